package orthoexpr

import "strings"

// missingTokens are the cells read as missing by default by the pandas-based
// tools these tables usually come from.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a table cell denotes a missing value.
func IsMissing(cell string) bool {
	_, missing := missingTokens[strings.TrimSpace(cell)]
	return missing
}
