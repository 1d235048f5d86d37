// Package match finds the declared name a misspelled document key or
// discriminant value most likely meant.
//
// Key functions:
//   - NormalizeIdent: folds case and separators before comparison
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the best candidate above MinScore
package match
