package domain

import "strings"

// MediaKind distinguishes the CDN resource types.
type MediaKind string

// Supported resource kinds.
const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// allowedContentTypes lists what the media host accepts.
var allowedContentTypes = map[string]MediaKind{
	"image/jpeg":      MediaKindImage,
	"image/png":       MediaKindImage,
	"image/gif":       MediaKindImage,
	"image/webp":      MediaKindImage,
	"video/mp4":       MediaKindVideo,
	"video/quicktime": MediaKindVideo,
	"video/x-msvideo": MediaKindVideo,
}

// KindForContentType returns the resource kind for an upload's content type
// and false when the type is not accepted.
func KindForContentType(contentType string) (MediaKind, bool) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	kind, ok := allowedContentTypes[ct]
	return kind, ok
}

// ParseMediaKind converts raw into a MediaKind, defaulting to image.
func ParseMediaKind(raw string) (MediaKind, error) {
	switch MediaKind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MediaKindImage:
		return MediaKindImage, nil
	case MediaKindVideo:
		return MediaKindVideo, nil
	}
	return "", NewValidationError("resource_type", "must be image or video", ErrInvalidMedia)
}

// Media is a reference to an asset hosted on the CDN. Removing the reference
// does not delete the asset.
type Media struct {
	URL          string    `json:"url" validate:"required,url"`
	PublicID     string    `json:"public_id" validate:"required"`
	ResourceType MediaKind `json:"resource_type" validate:"oneof=image video"`
	Format       string    `json:"format,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	Bytes        int       `json:"bytes,omitempty"`
}
