package aws

import (
	"catalog/pkg/config"
	"fmt"
	"time"

	"github.com/gofiber/storage/s3/v2"
)

var appConfig = config.Read()

type S3 struct {
	bucket *s3.Storage
}

func NewS3Bucket() *S3 {
	s3 := s3.New(s3.Config{
		Endpoint: appConfig.AWSEndpoint,
		Bucket:   appConfig.AWSBucket,
		Region:   appConfig.AWSDefaultRegion,
		Credentials: s3.Credentials{
			AccessKey:       appConfig.AWSAccessKey,
			SecretAccessKey: appConfig.AWSSecretKey,
		},
		MaxAttempts:    3,
		RequestTimeout: time.Second * 10,
		Reset:          false,
	})

	return &S3{
		bucket: s3,
	}
}

func (s *S3) Upload(key string, data []byte) error {
	return s.bucket.Set(key, data, time.Hour*100)
}

func (s *S3) Download(key string) ([]byte, error) {
	return s.bucket.Get(key)
}

func (s *S3) Delete(key string) error {
	return s.bucket.Delete(key)
}

// PublicURL returns the browser-reachable URL for an uploaded key.
// With a custom endpoint (MinIO) the URL is endpoint/bucket/key,
// otherwise the standard S3 virtual-hosted form.
func (s *S3) PublicURL(key string) string {
	if appConfig.AWSEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", appConfig.AWSEndpoint, appConfig.AWSBucket, key)
	}

	if appConfig.AWSDefaultRegion != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", appConfig.AWSBucket, appConfig.AWSDefaultRegion, key)
	}

	return key
}

// KeyFromURL reverses PublicURL, returning the storage key for a URL
// this service produced. Empty string when the URL is not ours.
func KeyFromURL(url string) string {
	var prefix string
	if appConfig.AWSEndpoint != "" {
		prefix = fmt.Sprintf("%s/%s/", appConfig.AWSEndpoint, appConfig.AWSBucket)
	} else if appConfig.AWSDefaultRegion != "" {
		prefix = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", appConfig.AWSBucket, appConfig.AWSDefaultRegion)
	}

	if prefix == "" || len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return ""
	}
	return url[len(prefix):]
}
