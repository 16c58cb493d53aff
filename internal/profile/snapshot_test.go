package profile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbalogun/alumnihub/internal/models"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"Ada Obi", "Ada", "Obi"},
		{"Ada Obi Lovelace", "Ada", "Obi Lovelace"},
		{"Ada", "Ada", ""},
		{"  Ada   Obi  ", "Ada", "Obi"},
		{"", "", ""},
	}
	for _, tc := range tests {
		first, last := SplitFullName(tc.full)
		require.Equal(t, tc.first, first, "full=%q", tc.full)
		require.Equal(t, tc.last, last, "full=%q", tc.full)
	}
}

func TestJoinFullName(t *testing.T) {
	require.Equal(t, "Ada Obi", JoinFullName("Ada", "Obi"))
	require.Equal(t, "Ada", JoinFullName(" Ada ", ""))
	require.Equal(t, "Obi", JoinFullName("", "Obi"))
	require.Equal(t, "", JoinFullName("", ""))
}

func TestSnapshotOf(t *testing.T) {
	p := &models.Profile{
		ID:         "u1",
		FullName:   "Ada Obi",
		Email:      "ada@example.com",
		SetID:      "s1",
		Profession: "Engineer",
		Bio:        "Hi",
		AvatarURL:  "avatars/u1.png",
	}

	snap := SnapshotOf(p)
	require.Equal(t, Snapshot{
		FirstName:  "Ada",
		LastName:   "Obi",
		Email:      "ada@example.com",
		SetID:      "s1",
		Profession: "Engineer",
		Bio:        "Hi",
	}, snap)
}
