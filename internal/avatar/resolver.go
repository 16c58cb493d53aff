// Package avatar turns stored avatar references into browser-displayable
// URLs. A reference is either a fully-qualified URL (passed through) or a
// storage-relative path resolved through a public-URL-first, signed-URL
// fallback strategy. Resolved URLs are transient: they are never written
// back onto the profile record.
package avatar

import (
	"context"
	"strings"
	"time"

	"github.com/dbalogun/alumnihub/internal/logging"
	"github.com/dbalogun/alumnihub/internal/storage"
)

// State classifies how a display URL was obtained.
type State int

const (
	// Absent means the profile carries no avatar reference.
	Absent State = iota
	// LocalPreview is an ephemeral URL for a file staged but not yet saved.
	LocalPreview
	// PublicURL was composed locally or passed through unchanged.
	PublicURL
	// SignedURL was issued by the object store with a bounded lifetime.
	SignedURL
	// Placeholder means resolution failed; render the stock image.
	Placeholder
)

// DefaultSignedTTL is the validity window for tier-2 signed URLs.
const DefaultSignedTTL = time.Hour

// Display is a transient render instruction for an avatar.
type Display struct {
	State State
	URL   string
}

// Resolver maps avatar references to Displays. Failures degrade to
// Placeholder and are logged; Resolve never returns an error.
type Resolver struct {
	store storage.ObjectStore
	ttl   time.Duration
	log   logging.Logger
}

func NewResolver(store storage.ObjectStore, ttl time.Duration, log logging.Logger) *Resolver {
	if ttl <= 0 {
		ttl = DefaultSignedTTL
	}
	return &Resolver{store: store, ttl: ttl, log: log}
}

// Resolve maps a stored avatar reference to a displayable URL. An empty
// reference is Absent; an http(s) reference passes through untouched with
// no store calls; a storage path tries the public URL first and falls back
// to a signed URL.
func (r *Resolver) Resolve(ctx context.Context, ref string) Display {
	if ref == "" {
		return Display{State: Absent}
	}
	if isHTTPURL(ref) {
		return Display{State: PublicURL, URL: ref}
	}
	if u := r.store.PublicURL(ref); u != "" {
		return Display{State: PublicURL, URL: u}
	}
	return r.signed(ctx, ref)
}

// ResolveSigned skips the public tier for callers that need a
// private-access guarantee regardless of bucket visibility.
func (r *Resolver) ResolveSigned(ctx context.Context, ref string) Display {
	if ref == "" {
		return Display{State: Absent}
	}
	if isHTTPURL(ref) {
		return Display{State: PublicURL, URL: ref}
	}
	return r.signed(ctx, ref)
}

func (r *Resolver) signed(ctx context.Context, ref string) Display {
	u, err := r.store.SignedURL(ctx, ref, r.ttl)
	if err != nil {
		r.log.Warn(ctx, "failed to create signed avatar url", "path", ref, "error", err)
		return Display{State: Placeholder}
	}
	if u == "" {
		return Display{State: Placeholder}
	}
	r.log.Debug(ctx, "issued signed avatar url", "path", ref, "ttl", r.ttl)
	return Display{State: SignedURL, URL: u}
}

func isHTTPURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
