package common

import (
	"strconv"
	"strings"
)

// UnknownStr is the display text for values outside a known enumeration.
const UnknownStr = "unknown"

// QuoteJoin quotes each string and joins them with ", ".
func QuoteJoin(values []string) string {
	return strings.Join(Map(values, strconv.Quote), ", ")
}
