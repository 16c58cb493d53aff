package cli

import (
	"context"

	"github.com/dbalogun/alumnihub/internal/avatar"
)

// getSimpleText, getField and getToken are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getField = GetField
var getToken = GetToken

const shortBioLimit = 160

// Show renders the loaded profile: name, contact details, cohort label,
// a trimmed biography, and where the avatar resolves to.
func (a *App) Show(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	view := a.ctrl.View()
	printlnFn("Name:      ", view.DisplayName())
	printlnFn("Email:     ", view.Profile.Email)
	printlnFn("Set:       ", view.CohortLabel)
	printlnFn("Profession:", view.Profile.Profession)
	printlnFn("Bio:       ", view.ShortBio(shortBioLimit))

	display := a.ctrl.Avatar()
	switch display.State {
	case avatar.Absent:
		printlnFn("Avatar:     none")
	case avatar.Placeholder:
		printlnFn("Avatar:     unavailable")
	default:
		printlnFn("Avatar:    ", display.URL)
	}

	if msg := a.ctrl.Success(); msg != "" {
		printlnFn(msg)
	}
	if msg := a.ctrl.Error(); msg != "" {
		printlnFn("Warning:", msg)
	}
	return nil
}
