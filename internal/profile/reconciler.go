package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dbalogun/alumnihub/internal/avatar"
	"github.com/dbalogun/alumnihub/internal/backend"
	"github.com/dbalogun/alumnihub/internal/common"
	"github.com/dbalogun/alumnihub/internal/logging"
	"github.com/dbalogun/alumnihub/internal/models"
	"github.com/dbalogun/alumnihub/internal/storage"
	"github.com/dbalogun/alumnihub/internal/token"
)

// State tracks a reconciler through its load/save lifecycle:
// Idle -> Loading -> {Ready, Failed}; Ready -> Saving -> {Ready, Failed}.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateSaving
	StateFailed
)

// DefaultBio is written once when a profile is first seen with an empty or
// all-whitespace biography.
const DefaultBio = "Proudly an Alumni 🎉"

const noCohortLabel = "Set not specified"

// ErrNotLoaded is returned by Save before a successful Load, or while
// another operation is in flight.
var ErrNotLoaded = errors.New("no loaded profile")

// SaveResult reports the outcome of a save.
type SaveResult struct {
	// View is the refreshed read model. Nil when NoChanges is set.
	View *View
	// NoChanges means the merged update set was empty and no write was
	// issued.
	NoChanges bool
	// Warning carries a non-fatal degradation, such as a failed avatar
	// upload alongside an otherwise successful save.
	Warning string
}

// Reconciler orchestrates one profile page instance: identity decoding,
// fetch, defaulting and backfill, cohort labeling, avatar resolution, and
// diff-based saves. One reconciler owns one profile record and its
// baseline; instances are not shared across pages.
type Reconciler struct {
	store   backend.Store
	objects storage.ObjectStore
	avatars *avatar.Resolver
	log     logging.Logger
	now     func() time.Time

	mu       sync.Mutex
	seq      int64
	state    State
	identity string
	profile  *models.Profile
	cohort   *models.Cohort
	baseline Snapshot
}

func NewReconciler(store backend.Store, objects storage.ObjectStore, avatars *avatar.Resolver, log logging.Logger) *Reconciler {
	return &Reconciler{
		store:   store,
		objects: objects,
		avatars: avatars,
		log:     log,
		now:     time.Now,
		state:   StateIdle,
	}
}

func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Identity returns the identity key of the loaded profile, or "".
func (r *Reconciler) Identity() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identity
}

// Baseline returns the last-synchronized editable snapshot.
func (r *Reconciler) Baseline() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.baseline
}

// Invalidate discards the result of any in-flight load or save. The late
// arrival observes a sequence mismatch and returns common.ErrStale instead
// of applying itself. Intended for page teardown mid-operation.
func (r *Reconciler) Invalidate() {
	r.mu.Lock()
	r.seq++
	r.state = StateIdle
	r.mu.Unlock()
}

// Load resolves the identity from sessionToken, fetches and repairs the
// profile, and returns the view model. Identity failures are fatal; a
// failed bio backfill or cohort fetch degrades the view instead.
//
// Overlapping loads are not deduplicated here; the caller gates on the
// Loading state.
func (r *Reconciler) Load(ctx context.Context, sessionToken string) (*View, error) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.state = StateLoading
	r.mu.Unlock()

	view, id, err := r.load(ctx, sessionToken)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq != seq {
		return nil, common.ErrStale
	}
	if err != nil {
		r.state = StateFailed
		return nil, err
	}

	r.state = StateReady
	r.identity = id
	r.profile = view.Profile
	r.cohort = view.Cohort
	r.baseline = view.Baseline
	return view, nil
}

func (r *Reconciler) load(ctx context.Context, sessionToken string) (*View, string, error) {
	claims, err := token.Decode(sessionToken)
	if err != nil {
		return nil, "", err
	}
	id, err := claims.Identity()
	if err != nil {
		return nil, "", err
	}

	prof, err := r.store.GetProfile(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var warning string
	if strings.TrimSpace(prof.Bio) == "" {
		updated, err := r.store.UpdateProfile(ctx, id, models.Update{"bio": DefaultBio})
		if err != nil {
			// The read path survives a failed backfill; keep the fetched
			// record.
			r.log.Warn(ctx, "bio backfill failed", "id", id, "error", err)
			warning = "could not set default bio"
		} else {
			prof = updated
		}
	}

	view := r.buildView(ctx, prof, nil)
	view.Warning = warning
	return view, id, nil
}

// buildView assembles the read model for prof: cohort label (reusing prior
// when the reference is unchanged), resolved avatar, and the new baseline.
func (r *Reconciler) buildView(ctx context.Context, prof *models.Profile, prior *models.Cohort) *View {
	view := &View{Profile: prof, CohortLabel: noCohortLabel}

	if prof.SetID != "" {
		switch {
		case prior != nil && prior.ID == prof.SetID:
			view.Cohort = prior
			view.CohortLabel = prior.Label()
		default:
			cohort, err := r.store.GetCohort(ctx, prof.SetID)
			if err != nil {
				// Non-fatal: the profile stays usable with a degraded label.
				r.log.Warn(ctx, "cohort fetch failed", "set_id", prof.SetID, "error", err)
				view.CohortLabel = fmt.Sprintf("Set of %s", prof.SetID)
			} else {
				view.Cohort = cohort
				view.CohortLabel = cohort.Label()
			}
		}
	}

	view.Avatar = r.avatars.Resolve(ctx, prof.AvatarURL)
	view.Baseline = SnapshotOf(prof)
	return view
}

// Save persists the difference between form and the current baseline,
// uploading the pending avatar first when one is staged. An empty merged
// update short-circuits to a no-changes success without any write. On
// update failure the prior data is left untouched.
func (r *Reconciler) Save(ctx context.Context, form Snapshot, pending *models.AvatarFile) (*SaveResult, error) {
	r.mu.Lock()
	if r.profile == nil || r.state == StateLoading || r.state == StateSaving {
		r.mu.Unlock()
		return nil, ErrNotLoaded
	}
	r.seq++
	seq := r.seq
	r.state = StateSaving
	id := r.identity
	baseline := r.baseline
	cohort := r.cohort
	r.mu.Unlock()

	res, err := r.save(ctx, id, baseline, cohort, form, pending)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq != seq {
		return nil, common.ErrStale
	}
	if err != nil {
		r.state = StateFailed
		return nil, err
	}

	r.state = StateReady
	if !res.NoChanges {
		r.profile = res.View.Profile
		r.cohort = res.View.Cohort
		r.baseline = res.View.Baseline
	}
	return res, nil
}

func (r *Reconciler) save(ctx context.Context, id string, baseline Snapshot, cohort *models.Cohort, form Snapshot, pending *models.AvatarFile) (*SaveResult, error) {
	res := &SaveResult{}

	// Upload strictly precedes diff computation and the partial update.
	var avatarPath string
	if pending != nil {
		path, err := r.uploadAvatar(ctx, id, pending)
		if err != nil {
			// Non-fatal: the rest of the save proceeds without the avatar.
			r.log.Warn(ctx, "avatar upload failed", "id", id, "error", err)
			res.Warning = "avatar upload failed; profile saved without avatar"
		} else {
			avatarPath = path
		}
	}

	delta := Diff(form, baseline)
	if avatarPath != "" {
		delta["avatar_url"] = avatarPath
	}

	if len(delta) == 0 {
		res.NoChanges = true
		return res, nil
	}

	updated, err := r.store.UpdateProfile(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	res.View = r.buildView(ctx, updated, cohort)
	return res, nil
}

// uploadAvatar stores the pending file under a key derived from the
// identity, the current time, and the file extension, so repeated uploads
// never collide across users or attempts. The storage path, not a URL, is
// what gets persisted.
func (r *Reconciler) uploadAvatar(ctx context.Context, id string, file *models.AvatarFile) (string, error) {
	path := fmt.Sprintf("avatars/%s-%d%s", id, r.now().UnixMilli(), file.Ext())
	if err := r.objects.Upload(ctx, path, file.Data, file.ContentType(), true); err != nil {
		return "", err
	}
	return path, nil
}
