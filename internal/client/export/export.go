// Package export uploads admin reports to an S3-compatible bucket.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/google/uuid"
)

// ErrDisabled means no bucket is configured.
var ErrDisabled = errors.New("report export is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newObjectID = uuid.NewString
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Settings locate the bucket. Endpoint, when set, switches to path-style
// addressing for MinIO and similar servers.
type Settings struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func (s Settings) Enabled() bool { return s.Bucket != "" }

// Report is the uploaded document.
type Report struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	GeneratedBy string           `json:"generatedBy"`
	Analytics   models.Analytics `json:"analytics"`
	Users       []models.User    `json:"users"`
}

type Exporter struct {
	settings Settings
	now      func() time.Time
}

func NewExporter(s Settings) *Exporter {
	return &Exporter{settings: s, now: time.Now}
}

func (e *Exporter) Enabled() bool { return e.settings.Enabled() }

// ObjectKey is reports/YYYY/MM/DD/<uuid>.json for the UTC date of t.
func ObjectKey(t time.Time, id string) string {
	t = t.UTC()
	return fmt.Sprintf("reports/%04d/%02d/%02d/%s.json", t.Year(), int(t.Month()), t.Day(), id)
}

func (e *Exporter) client(ctx context.Context) (objectPutter, error) {
	opts := []func(*config.LoadOptions) error{}
	if e.settings.Region != "" {
		opts = append(opts, config.WithRegion(e.settings.Region))
	}
	if e.settings.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.settings.AccessKey,
			e.settings.SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if e.settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(e.settings.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload stores r and returns its object key.
func (e *Exporter) Upload(ctx context.Context, r Report) (string, error) {
	if !e.Enabled() {
		return "", ErrDisabled
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = e.now()
	}

	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	c, err := e.client(ctx)
	if err != nil {
		return "", err
	}

	key := ObjectKey(r.GeneratedAt, newObjectID())
	_, err = c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.settings.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
