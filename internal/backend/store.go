// Package backend talks to the hosted record store that owns profile and
// cohort data. The remote service is the single source of truth; it
// serializes concurrent writers, and updates from this client are
// last-writer-wins (no version or etag checks).
package backend

import (
	"context"

	"github.com/dbalogun/alumnihub/internal/models"
)

// Store is the record-store surface the client needs.
//
// Implementations translate transport failures into the sentinel errors in
// internal/common before returning; no raw transport errors cross this
// boundary.
type Store interface {
	// GetProfile fetches the profile for the given identity key.
	// Returns common.ErrNotFound when no record exists.
	GetProfile(ctx context.Context, id string) (*models.Profile, error)

	// UpdateProfile applies a sparse update keyed by identity and returns
	// the full updated record.
	UpdateProfile(ctx context.Context, id string, fields models.Update) (*models.Profile, error)

	// GetCohort fetches a single cohort record.
	GetCohort(ctx context.Context, id string) (*models.Cohort, error)

	// ListCohorts returns all cohorts ordered by year, newest first.
	ListCohorts(ctx context.Context) ([]models.Cohort, error)
}
