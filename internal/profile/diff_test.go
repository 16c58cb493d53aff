package profile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbalogun/alumnihub/internal/models"
)

func baseSnapshot() Snapshot {
	return Snapshot{
		FirstName:  "Ada",
		LastName:   "Obi",
		Email:      "ada@example.com",
		SetID:      "s1",
		Profession: "Engineer",
		Bio:        "Hi",
	}
}

func TestDiff_NoChanges(t *testing.T) {
	require.Empty(t, Diff(baseSnapshot(), baseSnapshot()))
}

func TestDiff_LastNameChangeCollapsesToFullName(t *testing.T) {
	current := baseSnapshot()
	current.LastName = "Balogun"

	delta := Diff(current, baseSnapshot())
	require.Equal(t, models.Update{"full_name": "Ada Balogun"}, delta)
}

func TestDiff_FirstNameChangeCollapsesToFullName(t *testing.T) {
	current := baseSnapshot()
	current.FirstName = "Amina"

	delta := Diff(current, baseSnapshot())
	require.Equal(t, models.Update{"full_name": "Amina Obi"}, delta)
}

func TestDiff_SimpleFields(t *testing.T) {
	current := baseSnapshot()
	current.Email = "new@example.com"
	current.Profession = "Doctor"
	current.Bio = "Changed"

	delta := Diff(current, baseSnapshot())
	require.Equal(t, models.Update{
		"email":      "new@example.com",
		"profession": "Doctor",
		"bio":        "Changed",
	}, delta)
}

func TestDiff_ClearedSetIDIsNotUnassignment(t *testing.T) {
	current := baseSnapshot()
	current.SetID = ""

	delta := Diff(current, baseSnapshot())
	require.NotContains(t, delta, "set_id")
	require.Empty(t, delta)
}

func TestDiff_NewSetIDIncluded(t *testing.T) {
	current := baseSnapshot()
	current.SetID = "s2"

	delta := Diff(current, baseSnapshot())
	require.Equal(t, models.Update{"set_id": "s2"}, delta)
}

func TestDiff_SetIDFromEmptyBaseline(t *testing.T) {
	baseline := baseSnapshot()
	baseline.SetID = ""
	current := baseline
	current.SetID = "s3"

	delta := Diff(current, baseline)
	require.Equal(t, models.Update{"set_id": "s3"}, delta)
}
