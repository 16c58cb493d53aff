package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dbalogun/alumnihub/internal/avatar"
	"github.com/dbalogun/alumnihub/internal/common"
	"github.com/dbalogun/alumnihub/internal/logging"
	"github.com/dbalogun/alumnihub/internal/models"
)

// ---- fakes ----

// fakeBackend implements backend.Store with per-method presets and call
// recording.
type fakeBackend struct {
	profile    *models.Profile
	profileErr error
	// onGetProfile, when set, runs before GetProfile returns. Used to
	// trigger invalidation mid-load.
	onGetProfile func()

	updated    *models.Profile
	updateErr  error
	updates    []models.Update
	updateIDs  []string
	cohort     *models.Cohort
	cohortErr  error
	cohorts    []models.Cohort
	cohortsErr error
}

func (f *fakeBackend) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	if f.onGetProfile != nil {
		f.onGetProfile()
	}
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeBackend) UpdateProfile(ctx context.Context, id string, fields models.Update) (*models.Profile, error) {
	f.updateIDs = append(f.updateIDs, id)
	f.updates = append(f.updates, fields)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updated != nil {
		cp := *f.updated
		return &cp, nil
	}
	// Apply the sparse update onto the stored profile.
	cp := *f.profile
	if v, ok := fields["full_name"]; ok {
		cp.FullName = v
	}
	if v, ok := fields["email"]; ok {
		cp.Email = v
	}
	if v, ok := fields["profession"]; ok {
		cp.Profession = v
	}
	if v, ok := fields["bio"]; ok {
		cp.Bio = v
	}
	if v, ok := fields["set_id"]; ok {
		cp.SetID = v
	}
	if v, ok := fields["avatar_url"]; ok {
		cp.AvatarURL = v
	}
	return &cp, nil
}

func (f *fakeBackend) GetCohort(ctx context.Context, id string) (*models.Cohort, error) {
	if f.cohortErr != nil {
		return nil, f.cohortErr
	}
	cp := *f.cohort
	return &cp, nil
}

func (f *fakeBackend) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	return f.cohorts, f.cohortsErr
}

// fakeObjects implements storage.ObjectStore.
type fakeObjects struct {
	publicURL string
	signedURL string
	signedErr error
	uploadErr error

	uploads []uploadCall
}

type uploadCall struct {
	path        string
	contentType string
	overwrite   bool
}

func (f *fakeObjects) PublicURL(path string) string { return f.publicURL }

func (f *fakeObjects) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	return f.signedURL, f.signedErr
}

func (f *fakeObjects) Upload(ctx context.Context, path string, data []byte, contentType string, overwrite bool) error {
	f.uploads = append(f.uploads, uploadCall{path: path, contentType: contentType, overwrite: overwrite})
	return f.uploadErr
}

// ---- helpers ----

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func newTestReconciler(be *fakeBackend, obj *fakeObjects) *Reconciler {
	log := logging.NewDiscard()
	res := avatar.NewResolver(obj, 0, log)
	r := NewReconciler(be, obj, res, log)
	r.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return r
}

func loadReady(t *testing.T, r *Reconciler, be *fakeBackend) *View {
	t.Helper()
	view, err := r.Load(context.Background(), signedToken(t, jwt.MapClaims{"sub": be.profile.ID}))
	require.NoError(t, err)
	require.Equal(t, StateReady, r.State())
	return view
}

// ---- load ----

func TestLoad_EmptyBioTriggersOneBackfill(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: ""}}
	r := newTestReconciler(be, &fakeObjects{})

	view := loadReady(t, r, be)

	require.Len(t, be.updates, 1)
	require.Equal(t, models.Update{"bio": DefaultBio}, be.updates[0])
	require.Equal(t, "u1", be.updateIDs[0])
	require.Equal(t, DefaultBio, view.Profile.Bio)
	require.Equal(t, DefaultBio, view.Baseline.Bio)
	require.Empty(t, view.Warning)
}

func TestLoad_WhitespaceBioTriggersBackfill(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", Bio: "  "}}
	r := newTestReconciler(be, &fakeObjects{})

	view := loadReady(t, r, be)

	require.Len(t, be.updates, 1)
	require.Equal(t, DefaultBio, view.Profile.Bio)
}

func TestLoad_PresentBioIssuesNoBackfill(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", Bio: "Hi"}}
	r := newTestReconciler(be, &fakeObjects{})

	view := loadReady(t, r, be)

	require.Empty(t, be.updates)
	require.Equal(t, "Hi", view.Profile.Bio)
}

func TestLoad_BackfillFailureKeepsFetchedRecord(t *testing.T) {
	be := &fakeBackend{
		profile:   &models.Profile{ID: "u1", Bio: ""},
		updateErr: common.ErrUpdate,
	}
	r := newTestReconciler(be, &fakeObjects{})

	view := loadReady(t, r, be)

	require.Equal(t, "", view.Profile.Bio)
	require.NotEmpty(t, view.Warning)
}

func TestLoad_CohortLabel(t *testing.T) {
	be := &fakeBackend{
		profile: &models.Profile{ID: "u1", Bio: "Hi", SetID: "s1"},
		cohort:  &models.Cohort{ID: "s1", Name: "Set A", Year: 2010},
	}
	r := newTestReconciler(be, &fakeObjects{})

	view := loadReady(t, r, be)
	require.Equal(t, "Set A (2010)", view.CohortLabel)
	require.NotNil(t, view.Cohort)
}

func TestLoad_CohortFetchFailureDegradesLabel(t *testing.T) {
	be := &fakeBackend{
		profile:   &models.Profile{ID: "u1", Bio: "Hi", SetID: "s1"},
		cohortErr: common.ErrFetch,
	}
	r := newTestReconciler(be, &fakeObjects{})

	view := loadReady(t, r, be)
	require.Equal(t, "Set of s1", view.CohortLabel)
	require.Nil(t, view.Cohort)
}

func TestLoad_NoCohortReference(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", Bio: "Hi"}}
	r := newTestReconciler(be, &fakeObjects{})

	view := loadReady(t, r, be)
	require.Equal(t, "Set not specified", view.CohortLabel)
}

func TestLoad_InvalidToken(t *testing.T) {
	r := newTestReconciler(&fakeBackend{}, &fakeObjects{})

	_, err := r.Load(context.Background(), "not.a-token")
	require.ErrorIs(t, err, common.ErrInvalidToken)
	require.Equal(t, StateFailed, r.State())
}

func TestLoad_MissingIdentityClaim(t *testing.T) {
	r := newTestReconciler(&fakeBackend{}, &fakeObjects{})

	_, err := r.Load(context.Background(), signedToken(t, jwt.MapClaims{"role": "authenticated"}))
	require.ErrorIs(t, err, common.ErrNoIdentity)
	require.Equal(t, StateFailed, r.State())
}

func TestLoad_ProfileNotFound(t *testing.T) {
	be := &fakeBackend{profileErr: common.ErrNotFound}
	r := newTestReconciler(be, &fakeObjects{})

	_, err := r.Load(context.Background(), signedToken(t, jwt.MapClaims{"sub": "u1"}))
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Equal(t, StateFailed, r.State())
}

func TestLoad_InvalidatedMidFlightDiscardsResult(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", Bio: "Hi"}}
	r := newTestReconciler(be, &fakeObjects{})
	be.onGetProfile = func() { r.Invalidate() }

	_, err := r.Load(context.Background(), signedToken(t, jwt.MapClaims{"sub": "u1"}))
	require.ErrorIs(t, err, common.ErrStale)
	require.Equal(t, StateIdle, r.State())
	require.Empty(t, r.Identity())
}

func TestLoad_ResolvesAvatarFromRecord(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", Bio: "Hi", AvatarURL: "avatars/u1.png"}}
	obj := &fakeObjects{publicURL: "http://store/avatar/avatars/u1.png"}
	r := newTestReconciler(be, obj)

	view := loadReady(t, r, be)
	require.Equal(t, avatar.PublicURL, view.Avatar.State)
	require.Equal(t, "http://store/avatar/avatars/u1.png", view.Avatar.URL)
}

// ---- save ----

func TestSave_BeforeLoad(t *testing.T) {
	r := newTestReconciler(&fakeBackend{}, &fakeObjects{})

	_, err := r.Save(context.Background(), Snapshot{}, nil)
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestSave_NoChangesIssuesNoWrite(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: "Hi"}}
	r := newTestReconciler(be, &fakeObjects{})
	view := loadReady(t, r, be)

	res, err := r.Save(context.Background(), view.Baseline, nil)
	require.NoError(t, err)
	require.True(t, res.NoChanges)
	require.Nil(t, res.View)
	require.Empty(t, be.updates)
	require.Equal(t, StateReady, r.State())
}

func TestSave_TextChange(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: "Hi"}}
	r := newTestReconciler(be, &fakeObjects{})
	view := loadReady(t, r, be)

	form := view.Baseline
	form.Profession = "Doctor"

	res, err := r.Save(context.Background(), form, nil)
	require.NoError(t, err)
	require.False(t, res.NoChanges)
	require.Len(t, be.updates, 1)
	require.Equal(t, models.Update{"profession": "Doctor"}, be.updates[0])
	require.Equal(t, "Doctor", res.View.Profile.Profession)

	// The returned record becomes the new diff baseline.
	require.Equal(t, "Doctor", r.Baseline().Profession)
}

func TestSave_AvatarUploadPathAndOverwrite(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: "Hi"}}
	obj := &fakeObjects{}
	r := newTestReconciler(be, obj)
	view := loadReady(t, r, be)

	file := &models.AvatarFile{Name: "me.png", Data: []byte("img")}
	res, err := r.Save(context.Background(), view.Baseline, file)
	require.NoError(t, err)
	require.False(t, res.NoChanges)

	require.Len(t, obj.uploads, 1)
	require.Equal(t, "avatars/u1-1700000000000.png", obj.uploads[0].path)
	require.Equal(t, "image/png", obj.uploads[0].contentType)
	require.True(t, obj.uploads[0].overwrite)

	// The storage path, not a URL, is persisted.
	require.Len(t, be.updates, 1)
	require.Equal(t, models.Update{"avatar_url": "avatars/u1-1700000000000.png"}, be.updates[0])
}

func TestSave_UploadFailureIsNonFatal(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: "Hi"}}
	obj := &fakeObjects{uploadErr: common.ErrUpload}
	r := newTestReconciler(be, obj)
	view := loadReady(t, r, be)

	form := view.Baseline
	form.Email = "new@example.com"

	res, err := r.Save(context.Background(), form, &models.AvatarFile{Name: "me.png", Data: []byte("img")})
	require.NoError(t, err)
	require.NotEmpty(t, res.Warning)
	require.Len(t, be.updates, 1)
	require.Equal(t, models.Update{"email": "new@example.com"}, be.updates[0])
	require.NotContains(t, be.updates[0], "avatar_url")
}

func TestSave_UploadFailureWithNoOtherChangesIsNoOp(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: "Hi"}}
	obj := &fakeObjects{uploadErr: common.ErrUpload}
	r := newTestReconciler(be, obj)
	view := loadReady(t, r, be)

	res, err := r.Save(context.Background(), view.Baseline, &models.AvatarFile{Name: "me.png"})
	require.NoError(t, err)
	require.True(t, res.NoChanges)
	require.NotEmpty(t, res.Warning)
	require.Empty(t, be.updates)
}

func TestSave_UpdateFailureLeavesPriorDataUntouched(t *testing.T) {
	be := &fakeBackend{profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: "Hi"}}
	r := newTestReconciler(be, &fakeObjects{})
	view := loadReady(t, r, be)

	be.updateErr = common.ErrUpdate
	form := view.Baseline
	form.Bio = "Changed"

	_, err := r.Save(context.Background(), form, nil)
	require.ErrorIs(t, err, common.ErrUpdate)
	require.Equal(t, StateFailed, r.State())
	require.Equal(t, "Hi", r.Baseline().Bio)

	// Retrying after the failure is allowed.
	be.updateErr = nil
	res, err := r.Save(context.Background(), form, nil)
	require.NoError(t, err)
	require.Equal(t, "Changed", res.View.Profile.Bio)
	require.Equal(t, StateReady, r.State())
}

func TestSave_ReusesCohortWhenUnchanged(t *testing.T) {
	be := &fakeBackend{
		profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: "Hi", SetID: "s1"},
		cohort:  &models.Cohort{ID: "s1", Name: "Set A", Year: 2010},
	}
	r := newTestReconciler(be, &fakeObjects{})
	view := loadReady(t, r, be)

	// Make further cohort fetches fail: the save must reuse the loaded one.
	be.cohortErr = errors.New("backend down")

	form := view.Baseline
	form.Bio = "Changed"

	res, err := r.Save(context.Background(), form, nil)
	require.NoError(t, err)
	require.Equal(t, "Set A (2010)", res.View.CohortLabel)
}

// ---- end to end ----

func TestLoad_EndToEnd(t *testing.T) {
	be := &fakeBackend{
		profile: &models.Profile{ID: "u1", FullName: "Ada Obi", Bio: "", SetID: "s1"},
		cohort:  &models.Cohort{ID: "s1", Name: "Set A", Year: 2010},
	}
	r := newTestReconciler(be, &fakeObjects{})

	view, err := r.Load(context.Background(), signedToken(t, jwt.MapClaims{"sub": "u1"}))
	require.NoError(t, err)

	require.Equal(t, DefaultBio, view.Profile.Bio)
	require.Equal(t, "Set A (2010)", view.CohortLabel)
	require.Equal(t, "Ada Obi", view.DisplayName())
	require.Equal(t, "u1", r.Identity())
}
