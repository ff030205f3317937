package media

import (
	"context"
	"io"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
)

// DefaultMaxFiles bounds a multi-file upload when no limit is configured.
const DefaultMaxFiles = 10

// File is a single upload.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Kind returns the resource kind for the file's content type, or
// ErrUnsupportedType.
func (f File) Kind() (domain.MediaKind, error) {
	kind, ok := domain.KindForContentType(f.ContentType)
	if !ok {
		return "", ErrUnsupportedType
	}
	return kind, nil
}

// Host stores and deletes media assets.
type Host interface {
	// Upload stores the file and returns its reference. Errors wrap
	// ErrUploadFailed or ErrUnsupportedType.
	Upload(ctx context.Context, file File) (domain.Media, error)

	// Delete removes an asset. Errors wrap ErrMediaNotFound or ErrDeleteFailed.
	Delete(ctx context.Context, publicID string, kind domain.MediaKind) error
}

// Result is the outcome of one file in a batch upload.
type Result struct {
	Filename string        `json:"filename"`
	Media    *domain.Media `json:"media,omitempty"`
	Err      error         `json:"-"`
}

// UploadMany uploads files in order and reports each outcome separately. A
// failed file does not stop the rest. The batch itself is rejected only when
// it is empty or larger than maxFiles.
func UploadMany(ctx context.Context, host Host, files []File, maxFiles int) ([]Result, error) {
	log := logger.FromContext(ctx)

	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > maxFiles {
		return nil, ErrTooManyFiles
	}

	results := make([]Result, len(files))
	for i, f := range files {
		results[i].Filename = f.Filename
		m, err := host.Upload(ctx, f)
		if err != nil {
			log.Warn("file upload failed",
				slog.String("filename", f.Filename),
				slog.String("error", err.Error()))
			results[i].Err = err
			continue
		}
		results[i].Media = &m
	}
	return results, nil
}

// Uploaded returns the references of the successful results, in order.
func Uploaded(results []Result) []domain.Media {
	out := make([]domain.Media, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Media != nil {
			out = append(out, *r.Media)
		}
	}
	return out
}
