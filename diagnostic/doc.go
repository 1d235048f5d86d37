// Package diagnostic collects non-fatal findings produced while resolving
// a configuration document.
//
// Resolution itself is all-or-nothing: a structural problem is returned as
// an error. Diagnostics carry everything that does not abort resolution:
//   - Unknown field warnings (misspelled or future keys)
//   - Informational notes (repeated set members dropped, defaults applied)
//
// Each diagnostic records the schema type and document path it refers to,
// so a caller can log it or turn warnings into failures.
package diagnostic
