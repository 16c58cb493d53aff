package models

import "fmt"

// Cohort is a named, year-tagged grouping of alumni (a "set"). Read-only
// reference data on this side.
type Cohort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
}

// Label renders the human label shown next to a profile, e.g. "Set A (2010)".
func (c Cohort) Label() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Year)
}
