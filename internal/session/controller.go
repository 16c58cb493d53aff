package session

import (
	"context"
	"errors"
	"time"

	"github.com/dbalogun/alumnihub/internal/avatar"
	"github.com/dbalogun/alumnihub/internal/common"
	"github.com/dbalogun/alumnihub/internal/logging"
	"github.com/dbalogun/alumnihub/internal/models"
	"github.com/dbalogun/alumnihub/internal/profile"
)

// successTTL bounds how long a success banner stays visible.
const successTTL = 3 * time.Second

// Reconciler is the slice of profile.Reconciler the controller drives.
type Reconciler interface {
	Load(ctx context.Context, sessionToken string) (*profile.View, error)
	Save(ctx context.Context, form profile.Snapshot, pending *models.AvatarFile) (*profile.SaveResult, error)
	State() profile.State
}

// Controller owns one edit session over a loaded profile: the form the
// user types into, the baseline it is diffed against, a pending avatar
// with its local preview, and the transient success and error banners.
// Controllers are single-goroutine; the rendering loop calls in sequence.
type Controller struct {
	rec      Reconciler
	previews *avatar.Previews
	log      logging.Logger
	now      func() time.Time

	token    string
	view     *profile.View
	form     profile.Snapshot
	baseline profile.Snapshot

	loading bool
	editing bool
	saving  bool

	pending    *models.AvatarFile
	previewURL string

	lastError    string
	success      string
	successUntil time.Time
}

func NewController(rec Reconciler, previews *avatar.Previews, log logging.Logger) *Controller {
	return &Controller{
		rec:      rec,
		previews: previews,
		log:      log,
		now:      time.Now,
	}
}

// Load fetches the profile for sessionToken and resets the session around
// it. Any in-progress edit is discarded.
func (c *Controller) Load(ctx context.Context, sessionToken string) error {
	if c.loading {
		return nil
	}
	c.loading = true
	c.token = sessionToken
	c.lastError = ""
	c.success = ""

	view, err := c.rec.Load(ctx, sessionToken)
	c.loading = false
	if err != nil {
		if errors.Is(err, common.ErrStale) {
			return nil
		}
		c.lastError = errorMessage(err)
		return err
	}

	c.adopt(view)
	c.editing = false
	c.clearPending()
	if view.Warning != "" {
		c.lastError = view.Warning
	}
	return nil
}

// BeginEdit opens the form for editing. Refused while no profile is
// loaded or another operation is running.
func (c *Controller) BeginEdit() bool {
	if c.view == nil || c.loading || c.saving || c.editing {
		return false
	}
	c.editing = true
	c.lastError = ""
	c.success = ""
	return true
}

// FieldChanged applies one form edit, addressed by wire field name.
func (c *Controller) FieldChanged(name, value string) {
	if !c.editing {
		return
	}
	switch name {
	case "first_name":
		c.form.FirstName = value
	case "last_name":
		c.form.LastName = value
	case "email":
		c.form.Email = value
	case "set_id":
		c.form.SetID = value
	case "profession":
		c.form.Profession = value
	case "bio":
		c.form.Bio = value
	}
}

// SelectAvatar stages file for upload on the next save and registers a
// local preview for it. A previously staged file is replaced.
func (c *Controller) SelectAvatar(file *models.AvatarFile) {
	if !c.editing || file == nil {
		return
	}
	c.clearPending()
	c.pending = file
	c.previewURL = c.previews.Add(file.Data)
}

// RemovePendingAvatar discards the staged file and its preview.
func (c *Controller) RemovePendingAvatar() {
	c.clearPending()
}

func (c *Controller) clearPending() {
	if c.previewURL != "" {
		c.previews.Revoke(c.previewURL)
		c.previewURL = ""
	}
	c.pending = nil
}

// Avatar returns what to render right now: the local preview when a file
// is staged, otherwise the resolved display from the last load or save.
func (c *Controller) Avatar() avatar.Display {
	if c.previewURL != "" {
		return avatar.Display{State: avatar.LocalPreview, URL: c.previewURL}
	}
	if c.view == nil {
		return avatar.Display{State: avatar.Absent}
	}
	return c.view.Avatar
}

// IsDirty reports whether saving now would write anything: a staged
// avatar, or any form field differing from the baseline.
func (c *Controller) IsDirty() bool {
	if c.pending != nil {
		return true
	}
	return len(profile.Diff(c.form, c.baseline)) > 0
}

// Cancel abandons the edit: the form snaps back to the baseline and the
// staged avatar is discarded.
func (c *Controller) Cancel() {
	if !c.editing || c.saving {
		return
	}
	c.form = c.baseline
	c.clearPending()
	c.editing = false
	c.lastError = ""
}

// Save persists the current form. A clean form is a no-op. On failure the
// session stays in edit mode so the user can retry or cancel.
func (c *Controller) Save(ctx context.Context) error {
	if !c.editing || c.saving {
		return nil
	}
	if !c.IsDirty() {
		return nil
	}
	c.saving = true
	c.lastError = ""

	res, err := c.rec.Save(ctx, c.form, c.pending)
	c.saving = false
	if err != nil {
		if errors.Is(err, common.ErrStale) {
			return nil
		}
		c.lastError = errorMessage(err)
		return err
	}

	if res.NoChanges {
		c.clearPending()
		c.editing = false
		if res.Warning != "" {
			c.lastError = res.Warning
		}
		c.setSuccess("No changes to save")
		return nil
	}

	c.adopt(res.View)
	c.clearPending()
	c.editing = false
	if res.Warning != "" {
		c.lastError = res.Warning
	}
	c.setSuccess("Profile updated successfully")
	return nil
}

func (c *Controller) adopt(view *profile.View) {
	c.view = view
	c.baseline = view.Baseline
	c.form = view.Baseline
}

func (c *Controller) setSuccess(msg string) {
	c.success = msg
	c.successUntil = c.now().Add(successTTL)
}

// Success returns the active success banner, or "" once it has expired.
func (c *Controller) Success() string {
	if c.success == "" || c.now().After(c.successUntil) {
		return ""
	}
	return c.success
}

func (c *Controller) Error() string          { return c.lastError }
func (c *Controller) Editing() bool          { return c.editing }
func (c *Controller) Saving() bool           { return c.saving }
func (c *Controller) Loading() bool          { return c.loading }
func (c *Controller) Form() profile.Snapshot { return c.form }
func (c *Controller) View() *profile.View    { return c.view }

// errorMessage maps a reconciler error to what the user sees.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrNoIdentity):
		return "Please sign in again"
	case errors.Is(err, common.ErrNotFound):
		return "Profile not found"
	case errors.Is(err, common.ErrUpdate):
		return "Failed to save profile"
	default:
		return "Unable to load profile"
	}
}
