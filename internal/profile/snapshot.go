// Package profile implements the reconciliation layer between the locally
// rendered profile and the remote source of truth: defaulting and backfill
// on read, minimal diff-based updates on write.
package profile

import (
	"strings"

	"github.com/dbalogun/alumnihub/internal/models"
)

// Snapshot captures the editable subset of a profile at the moment editing
// started or was last saved. It serves only as the diff baseline and is
// never persisted.
type Snapshot struct {
	FirstName  string
	LastName   string
	Email      string
	SetID      string
	Profession string
	Bio        string
}

// SnapshotOf derives a Snapshot from a profile record, decomposing the
// stored full name into editable first/last parts.
func SnapshotOf(p *models.Profile) Snapshot {
	first, last := SplitFullName(p.FullName)
	return Snapshot{
		FirstName:  first,
		LastName:   last,
		Email:      p.Email,
		SetID:      p.SetID,
		Profession: p.Profession,
		Bio:        p.Bio,
	}
}

// SplitFullName breaks a combined full name into a first name and the
// remainder: "Ada Obi Lovelace" -> ("Ada", "Obi Lovelace").
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// JoinFullName collapses the two edit fields back into the single stored
// full_name column.
func JoinFullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
