package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
)

// MediaHost is an in-memory media.Host. Uploaded assets are kept until
// deleted; deleting an unknown public ID returns media.ErrMediaNotFound.
type MediaHost struct {
	mu     sync.Mutex
	assets map[string]domain.Media
	nextID int

	UploadErr error
	DeleteErr error
	Deleted   []string
}

var _ media.Host = (*MediaHost)(nil)

// NewMediaHost creates an empty MediaHost.
func NewMediaHost() *MediaHost {
	return &MediaHost{assets: make(map[string]domain.Media)}
}

// Upload implements media.Host.
func (h *MediaHost) Upload(_ context.Context, f media.File) (domain.Media, error) {
	kind, err := f.Kind()
	if err != nil {
		return domain.Media{}, err
	}
	if h.UploadErr != nil {
		return domain.Media{}, h.UploadErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	publicID := fmt.Sprintf("pawscout/test/%d", h.nextID)
	m := domain.Media{
		URL:          "https://cdn.example.com/" + publicID,
		PublicID:     publicID,
		ResourceType: kind,
		Bytes:        int(f.Size),
	}
	h.assets[publicID] = m
	return m, nil
}

// Delete implements media.Host.
func (h *MediaHost) Delete(_ context.Context, publicID string, _ domain.MediaKind) error {
	if h.DeleteErr != nil {
		return h.DeleteErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.assets[publicID]; !ok {
		return media.ErrMediaNotFound
	}
	delete(h.assets, publicID)
	h.Deleted = append(h.Deleted, publicID)
	return nil
}

// Has reports whether publicID is currently stored.
func (h *MediaHost) Has(publicID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.assets[publicID]
	return ok
}
