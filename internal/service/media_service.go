package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
)

// MediaService exposes the media host to administrators for assets that are
// not tied to an animal.
type MediaService struct {
	host     media.Host
	maxFiles int
	logger   *slog.Logger
}

// NewMediaService creates a MediaService.
func NewMediaService(host media.Host, maxFiles int, logger *slog.Logger) (*MediaService, error) {
	if host == nil {
		return nil, fmt.Errorf("media host cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaService{
		host:     host,
		maxFiles: maxFiles,
		logger:   logger.With(slog.String("component", "media_service")),
	}, nil
}

// Upload stores one file.
func (s *MediaService) Upload(ctx context.Context, file media.File) (*domain.Media, error) {
	if _, err := file.Kind(); err != nil {
		return nil, err
	}
	m, err := s.host.Upload(ctx, file)
	if err != nil {
		return nil, err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("media uploaded",
		slog.String("public_id", m.PublicID),
		slog.String("resource_type", string(m.ResourceType)))
	return &m, nil
}

// UploadMany stores a batch and reports each file separately.
func (s *MediaService) UploadMany(ctx context.Context, files []media.File) ([]media.Result, error) {
	return media.UploadMany(ctx, s.host, files, s.maxFiles)
}

// Delete removes an asset from the host.
func (s *MediaService) Delete(ctx context.Context, publicID string, kind domain.MediaKind) error {
	if err := s.host.Delete(ctx, publicID, kind); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("media deleted", slog.String("public_id", publicID))
	return nil
}
