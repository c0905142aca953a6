package gateway

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Cloudinary is the default backend. Transcoding happens on their side; the
// eager full-HD streaming profile is requested asynchronously so the upload
// call returns as soon as the original is stored.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (g *Cloudinary) Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error) {
	resp, err := g.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     fmt.Sprintf("%s/%s", folder, uuid.New().String()),
		ResourceType: "video",
		Eager:        "sp_full_hd",
		EagerAsync:   api.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return &UploadResult{SecureURL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (g *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	resp, err := g.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "video",
	})
	if err != nil {
		return err
	}
	if resp.Result != "ok" {
		return fmt.Errorf("cloudinary: destroy returned %q", resp.Result)
	}
	return nil
}
