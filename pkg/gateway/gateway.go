package gateway

import (
	"context"
	"fmt"
	"io"

	"clipshare/cmd/config"
)

// folder namespaces every stored object on the media host.
const folder = "game_clips"

// UploadResult is what the media host hands back for a stored video. PublicID
// is the opaque handle later passed to Destroy.
type UploadResult struct {
	SecureURL string
	PublicID  string
}

// Gateway is the boundary to the external media host. Implementations make a
// single synchronous attempt with no retry; callers decide what a failure
// means for them.
type Gateway interface {
	Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// New selects the backend configured by MEDIA_BACKEND.
func New(cfg *config.Config) (Gateway, error) {
	switch cfg.MediaBackend {
	case "cloudinary":
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "s3":
		return NewS3(cfg.AWSRegion, cfg.S3Bucket)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}
