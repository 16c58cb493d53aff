package profile

import (
	"github.com/dbalogun/alumnihub/internal/avatar"
	"github.com/dbalogun/alumnihub/internal/models"
)

// View is the consistent read model exposed after a successful load or
// save: the effective record, its cohort label, a resolved avatar display,
// and the snapshot that subsequent edits diff against.
type View struct {
	Profile     *models.Profile
	Cohort      *models.Cohort
	CohortLabel string
	Avatar      avatar.Display
	Baseline    Snapshot

	// Warning carries a non-fatal degradation from the load, such as a
	// failed bio backfill. Empty when the load was clean.
	Warning string
}

// DisplayName returns the profile's full name, or a generic fallback when
// the record has none.
func (v *View) DisplayName() string {
	if v.Profile != nil && v.Profile.FullName != "" {
		return v.Profile.FullName
	}
	return "Alumnus"
}

// ShortBio trims the biography for compact rendering, cutting at max runes
// with an ellipsis.
func (v *View) ShortBio(max int) string {
	if v.Profile == nil {
		return ""
	}
	bio := []rune(v.Profile.Bio)
	if len(bio) <= max || max < 4 {
		return v.Profile.Bio
	}
	return string(bio[:max-3]) + "…"
}
