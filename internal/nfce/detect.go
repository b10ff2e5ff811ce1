package nfce

import (
	"fmt"
	"regexp"
)

var dateBRRe = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)

// DetectDateISO finds the first dd/mm/yyyy substring and converts it to
// YYYY-MM-DD. Returns empty when there is none; callers default to today.
func DetectDateISO(text string) string {
	m := dateBRRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
}
