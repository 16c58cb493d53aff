package models

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// AvatarFile is an image selected for upload but not yet persisted. The name
// is only consulted for its extension; the bytes are what gets stored.
type AvatarFile struct {
	Name string
	Data []byte
}

// Ext returns the lower-cased file extension including the leading dot,
// or "" when the name has none.
func (f *AvatarFile) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// ContentType guesses the MIME type from the extension, sniffing the bytes
// when the extension is unknown.
func (f *AvatarFile) ContentType() string {
	if t := mime.TypeByExtension(f.Ext()); t != "" {
		return t
	}
	if len(f.Data) > 0 {
		return http.DetectContentType(f.Data)
	}
	return "application/octet-stream"
}
