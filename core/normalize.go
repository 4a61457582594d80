package core

import (
	"strconv"
	"strings"
)

// NormalizePrice converts a display price ("650.000 TL") into an integer
// amount. Total function: any unparsable input, including the empty string,
// yields 0. The catalog carries inconsistent formatting; a garbled price must
// never drop the listing.
func NormalizePrice(raw string) int {
	return digitValue(raw)
}

// NormalizeDistance converts a display distance ("42.000 km") into an
// integer kilometer count. Same permissive policy as NormalizePrice.
func NormalizeDistance(raw string) int {
	return digitValue(raw)
}

// NormalizeYear converts a display model year ("2020") into an integer.
// Same permissive policy as NormalizePrice.
func NormalizeYear(raw string) int {
	return digitValue(raw)
}

// digitValue strips everything but ASCII digits and parses the remaining run.
func digitValue(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
