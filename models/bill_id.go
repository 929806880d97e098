package models

import (
	"regexp"
	"strings"
)

var billIDPattern = regexp.MustCompile(`^([A-Z]*)\s*0*([-\d]+)`)

// FixBillID normalizes a bill identifier to the stored form: upper-case,
// no dots, one space between prefix and number, leading zeros dropped.
// "hb01", "H.B. 1" and "HB 1" all become "HB 1".
func FixBillID(raw string) string {
	id := strings.ToUpper(strings.TrimSpace(raw))
	id = strings.ReplaceAll(id, ".", "")
	loc := billIDPattern.FindStringSubmatchIndex(id)
	if loc == nil {
		return strings.Join(strings.Fields(id), " ")
	}
	prefix := id[loc[2]:loc[3]]
	number := id[loc[4]:loc[5]]
	fixed := number
	if prefix != "" {
		fixed = prefix + " " + number
	}
	return strings.TrimSpace(fixed + id[loc[1]:])
}
