package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dbalogun/alumnihub/internal/models"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Edit walks the user through the profile form field by field, optionally
// stages a new avatar, and then saves, cancels, or drops the edit based on
// a final prompt. Fields left empty keep their current value.
func (a *App) Edit(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}
	if !a.ctrl.BeginEdit() {
		printlnFn("Cannot edit right now")
		return nil
	}

	form := a.ctrl.Form()
	fields := []struct {
		name    string
		label   string
		current string
	}{
		{"first_name", "First name", form.FirstName},
		{"last_name", "Last name", form.LastName},
		{"email", "Email", form.Email},
		{"set_id", "Set ID", form.SetID},
		{"profession", "Profession", form.Profession},
		{"bio", "Bio", form.Bio},
	}
	for _, f := range fields {
		value, changed, err := getField(a.reader, f.label, f.current, os.Stdout)
		if err != nil {
			a.ctrl.Cancel()
			return err
		}
		if changed {
			a.ctrl.FieldChanged(f.name, value)
		}
	}

	path, err := getSimpleText(a.reader, "Avatar file path (empty to keep current)", os.Stdout)
	if err != nil {
		a.ctrl.Cancel()
		return err
	}
	if path != "" {
		if err := a.stageAvatar(path); err != nil {
			printlnFn("Could not read avatar file:", err)
		}
	}

	if !a.ctrl.IsDirty() {
		printlnFn("No changes")
		a.ctrl.Cancel()
		return nil
	}

	answer, err := getSimpleText(a.reader, "Save changes? (y/n)", os.Stdout)
	if err != nil || answer != "y" {
		a.ctrl.Cancel()
		printlnFn("Cancelled")
		return err
	}

	if err := a.ctrl.Save(ctx); err != nil {
		printlnFn(a.ctrl.Error())
		return err
	}
	if msg := a.ctrl.Error(); msg != "" {
		printlnFn("Warning:", msg)
	}
	printlnFn(a.ctrl.Success())
	return nil
}

func (a *App) stageAvatar(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	file := &models.AvatarFile{Name: filepath.Base(path), Data: data}
	a.ctrl.SelectAvatar(file)
	printlnFn(fmt.Sprintf("Staged %s (%d bytes)", file.Name, len(data)))
	return nil
}
