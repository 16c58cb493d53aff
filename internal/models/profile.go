// Package models holds the record types exchanged with the alumni backend.
package models

// Profile is one membership record per identity. The identity key is
// assigned by the auth issuer and never changes. Role is read-only from the
// client's perspective. AvatarURL holds either a storage-relative path or a
// fully-qualified URL; display URLs derived from it are never written back.
type Profile struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	SetID      string `json:"set_id"`
	Profession string `json:"profession"`
	Bio        string `json:"bio"`
	AvatarURL  string `json:"avatar_url"`
	Role       string `json:"role"`
}

// Update is a sparse field map sent as a partial profile update. Possible
// keys: full_name, email, profession, bio, set_id, avatar_url.
type Update map[string]string
