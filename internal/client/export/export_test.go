package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func swapSeams(t *testing.T, putter *fakePutter, cfgErr error) *s3.Options {
	t.Helper()
	origLoad, origNew, origID := loadDefaultAWSConfig, newS3ClientFromConfig, newObjectID
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newObjectID = origLoad, origNew, origID
	})

	opts := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		if cfgErr != nil {
			return aws.Config{}, cfgErr
		}
		lo := config.LoadOptions{}
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		for _, fn := range optFns {
			fn(opts)
		}
		return putter
	}
	newObjectID = func() string { return "fixed-id" }
	return opts
}

func TestObjectKey(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	assert.Equal(t, "reports/2024/03/06/abc.json", ObjectKey(ts, "abc"))
}

func TestUpload_Disabled(t *testing.T) {
	_, err := NewExporter(Settings{}).Upload(context.Background(), Report{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestUpload_PutsJSONUnderDatedKey(t *testing.T) {
	putter := &fakePutter{}
	opts := swapSeams(t, putter, nil)

	e := NewExporter(Settings{Bucket: "reports", Region: "us-east-1", Endpoint: "http://minio:9000", AccessKey: "ak", SecretKey: "sk"})
	e.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	key, err := e.Upload(context.Background(), Report{
		GeneratedBy: "root@example.com",
		Analytics:   models.Analytics{TotalUsers: 2},
		Users:       []models.User{{ID: "1"}, {ID: "2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "reports/2025/01/02/fixed-id.json", key)

	require.NotNil(t, putter.in)
	assert.Equal(t, "reports", aws.ToString(putter.in.Bucket))
	assert.Equal(t, key, aws.ToString(putter.in.Key))
	assert.Equal(t, "application/json", aws.ToString(putter.in.ContentType))
	assert.Equal(t, "http://minio:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)

	var got Report
	require.NoError(t, json.Unmarshal(putter.body, &got))
	assert.Equal(t, "root@example.com", got.GeneratedBy)
	assert.Len(t, got.Users, 2)
	assert.Equal(t, 2, got.Analytics.TotalUsers)
}

func TestUpload_NoEndpointKeepsVirtualHosting(t *testing.T) {
	putter := &fakePutter{}
	opts := swapSeams(t, putter, nil)

	_, err := NewExporter(Settings{Bucket: "b"}).Upload(context.Background(), Report{})
	require.NoError(t, err)
	assert.Nil(t, opts.BaseEndpoint)
	assert.False(t, opts.UsePathStyle)
}

func TestUpload_Errors(t *testing.T) {
	swapSeams(t, &fakePutter{}, errors.New("no config"))
	_, err := NewExporter(Settings{Bucket: "b"}).Upload(context.Background(), Report{})
	require.ErrorContains(t, err, "load aws config")

	swapSeams(t, &fakePutter{err: errors.New("denied")}, nil)
	_, err = NewExporter(Settings{Bucket: "b"}).Upload(context.Background(), Report{})
	require.ErrorContains(t, err, "denied")
}
