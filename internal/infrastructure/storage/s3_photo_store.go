package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"propserv/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var ErrMissingPhotosBucket = errors.New("missing PHOTOS_BUCKET")

// S3PhotoStore keeps estimate photos in S3 under
// estimates/<estimateID>/<uuid><ext>. Only the object URL travels back to
// the core; deletion parses the key back out of it.

type S3PhotoStore struct {
	client *s3.Client
	bucket string
}

var _ interfaces.IPhotoStorage = (*S3PhotoStore)(nil)

func NewS3PhotoStore(client *s3.Client) (*S3PhotoStore, error) {
	bucket := os.Getenv("PHOTOS_BUCKET")
	if bucket == "" {
		return nil, ErrMissingPhotosBucket
	}
	return &S3PhotoStore{client: client, bucket: bucket}, nil
}

func (s *S3PhotoStore) Save(ctx context.Context, estimateID, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("estimates/%s/%s%s", estimateID, uuid.NewString(), safeExt(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"estimate-id":   estimateID,
			"original-name": filename,
			"uploaded-at":   time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		log.Printf("[photos][storage] put failed bucket=%s key=%s err=%v", s.bucket, key, err)
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func (s *S3PhotoStore) Delete(ctx context.Context, objectURL string) error {
	key, err := s.keyFromURL(objectURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("[photos][storage] delete failed bucket=%s key=%s err=%v", s.bucket, key, err)
	}
	return err
}

func (s *S3PhotoStore) keyFromURL(objectURL string) (string, error) {
	u, err := url.Parse(objectURL)
	if err != nil || u.Scheme != "s3" || u.Host != s.bucket {
		return "", fmt.Errorf("not a photo url for bucket %s: %q", s.bucket, objectURL)
	}
	return strings.TrimPrefix(u.Path, "/"), nil
}

func safeExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic":
		return ext
	}
	return ""
}
