package domain

import "strings"

// FilingStatus selects the bracket schedule and deduction tier for a return
type FilingStatus string

const (
	FilingSingle  FilingStatus = "single"
	FilingMarried FilingStatus = "married"
)

// ParseFilingStatus maps user input to a filing status. Anything that is not
// recognisably a joint return resolves to single.
func ParseFilingStatus(s string) FilingStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "married", "mfj", "married_filing_jointly", "joint":
		return FilingMarried
	default:
		return FilingSingle
	}
}

// Normalize returns the canonical form of the status
func (f FilingStatus) Normalize() FilingStatus {
	return ParseFilingStatus(string(f))
}

// IsKnown reports whether the raw value names a supported status without falling back
func (f FilingStatus) IsKnown() bool {
	switch strings.ToLower(strings.TrimSpace(string(f))) {
	case "single", "married", "mfj", "married_filing_jointly", "joint":
		return true
	}
	return false
}

func (f FilingStatus) String() string {
	return string(f.Normalize())
}
