package gateway

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// S3 is an alternative backend for deployments that keep clips in a bucket
// instead of Cloudinary. The bucket must serve objects publicly for the
// returned location to be playable.
type S3 struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	bucket   string
}

func NewS3(region, bucket string) (*S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &S3{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		bucket:   bucket,
	}, nil
}

func (g *S3) Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error) {
	key := fmt.Sprintf("%s/%s/%s", folder, uuid.New().String(), filepath.Base(filename))
	contentType := mime.TypeByExtension(filepath.Ext(filename))

	result, err := g.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{SecureURL: result.Location, PublicID: key}, nil
}

func (g *S3) Destroy(ctx context.Context, publicID string) error {
	_, err := g.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(publicID),
	})
	return err
}
