package avatar

import (
	"sync"

	"github.com/google/uuid"
)

// Previews hands out ephemeral local URLs for avatar files that are staged
// for upload but not yet persisted. A preview URL is only meaningful to the
// rendering layer and must be revoked once the pending file is saved or
// discarded.
type Previews struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewPreviews() *Previews {
	return &Previews{blobs: make(map[string][]byte)}
}

// Add registers data and returns its preview URL.
func (p *Previews) Add(data []byte) string {
	url := "blob:alumnihub/" + uuid.NewString()
	p.mu.Lock()
	p.blobs[url] = data
	p.mu.Unlock()
	return url
}

// Get returns the bytes behind a preview URL, if still registered.
func (p *Previews) Get(url string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.blobs[url]
	return b, ok
}

// Revoke releases the blob behind url. Revoking an unknown URL is a no-op.
func (p *Previews) Revoke(url string) {
	p.mu.Lock()
	delete(p.blobs, url)
	p.mu.Unlock()
}
