package edgar

import (
	"fmt"
	"strings"
	"time"
)

// filingDateLayouts are tried in order. Slash-separated dates are read
// month-first, matching how US filings write them.
var filingDateLayouts = []string{
	"1/2/06",
	"1/2/2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"20060102",
}

// ParseFilingDate parses the date strings that appear in filing
// metadata and document headers.
func ParseFilingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range filingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}
