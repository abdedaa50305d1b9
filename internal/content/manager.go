// Package content manages the admin-editable site content (contact block,
// footer).  Policy for this feature: the backend is asked first, and ANY
// fetch failure falls back to the mirrored copy; stale contact details beat
// an empty footer.  Other features make different fallback choices on
// purpose; this one is not a template.
package content

import (
	"context"
	"log"
	"sync"

	"github.com/rami151/laboissimlocal-sub000/internal/api"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/store"
)

// Manager caches the current site content between refreshes.
type Manager struct {
	client *api.Client
	mirror store.Mirror

	mu      sync.Mutex
	content model.SiteContent
}

// New seeds the manager from the mirror so pages have something to render
// before the first Refresh.
func New(client *api.Client, mirror store.Mirror) *Manager {
	m := &Manager{client: client, mirror: mirror}
	store.LoadJSON(mirror, store.KeySiteContent, &m.content)
	return m
}

// Content returns the last known site content.
func (m *Manager) Content() model.SiteContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Refresh fetches the backend copy and mirrors it.  On failure the mirrored
// copy stays in place and the error is logged, not surfaced; the public
// pages keep rendering either way.
func (m *Manager) Refresh(ctx context.Context) {
	fetched, err := m.client.SiteContent(ctx)
	if err != nil {
		log.Printf("content: fetch failed, keeping mirror: %v", err)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = fetched
	store.SaveJSON(m.mirror, store.KeySiteContent, fetched)
}

// Update applies a partial edit locally first (the editor stays responsive),
// mirrors it, then pushes the merged record to the backend.  A failed push
// is returned to the caller for a toast but the local state is kept; the
// next Refresh reconciles.
func (m *Manager) Update(ctx context.Context, partial model.SiteContent) error {
	m.mu.Lock()
	merged := m.content.Merge(partial)
	m.content = merged
	store.SaveJSON(m.mirror, store.KeySiteContent, merged)
	m.mu.Unlock()

	if _, err := m.client.UpdateSiteContent(ctx, merged); err != nil {
		return err
	}
	return nil
}
