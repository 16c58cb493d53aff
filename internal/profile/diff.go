package profile

import "github.com/dbalogun/alumnihub/internal/models"

// Diff compares the live edit form against the baseline snapshot and
// returns the minimal sparse update. A field appears only on strict
// inequality with the baseline. First and last name collapse into a single
// full_name entry when either part changed.
//
// SetID is included only when non-empty and different from the baseline:
// an empty selector is not treated as intentional un-assignment of an
// already-set cohort.
//
// The avatar is never compared here; its presence in an update is decided
// by upload success during save.
func Diff(current, baseline Snapshot) models.Update {
	delta := models.Update{}

	if current.FirstName != baseline.FirstName || current.LastName != baseline.LastName {
		delta["full_name"] = JoinFullName(current.FirstName, current.LastName)
	}
	if current.Email != baseline.Email {
		delta["email"] = current.Email
	}
	if current.Profession != baseline.Profession {
		delta["profession"] = current.Profession
	}
	if current.Bio != baseline.Bio {
		delta["bio"] = current.Bio
	}
	if current.SetID != baseline.SetID && current.SetID != "" {
		delta["set_id"] = current.SetID
	}

	return delta
}
