package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

type fakeBucketAPI struct {
	createErr error
	deleteErr error
	listPages []*s3.ListObjectsV2Output
	listErr   error
	listCalls int
	deleted   [][]types.ObjectIdentifier
	created   []string
	removed   []string
}

func (f *fakeBucketAPI) CreateBucket(_ context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, aws.ToString(params.Bucket))
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeBucketAPI) DeleteBucket(_ context.Context, params *s3.DeleteBucketInput, _ ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.removed = append(f.removed, aws.ToString(params.Bucket))
	return &s3.DeleteBucketOutput{}, nil
}

func (f *fakeBucketAPI) ListObjectsV2(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	page := f.listPages[f.listCalls]
	f.listCalls++
	return page, nil
}

func (f *fakeBucketAPI) DeleteObjects(_ context.Context, params *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	f.deleted = append(f.deleted, params.Delete.Objects)
	return &s3.DeleteObjectsOutput{}, nil
}

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

func emptyPage() *s3.ListObjectsV2Output {
	return &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
}

func TestBucketCreate(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		wantErr   bool
	}{
		{
			name: "creates bucket",
		},
		{
			name:      "already owned by caller is benign",
			createErr: apiError("BucketAlreadyOwnedByYou"),
		},
		{
			name:      "other api error propagates",
			createErr: apiError("AccessDenied"),
			wantErr:   true,
		},
		{
			name:      "transport error propagates",
			createErr: errors.New("connection reset"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeBucketAPI{createErr: tt.createErr}
			service := NewBucketService(client, "us-west-2")

			err := service.Create(context.Background(), "photos")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBucketCreateSetsLocationConstraint(t *testing.T) {
	var got types.BucketLocationConstraint
	capture := bucketCaptureAPI{inner: &fakeBucketAPI{}, onCreate: func(params *s3.CreateBucketInput) {
		got = params.CreateBucketConfiguration.LocationConstraint
	}}
	service := NewBucketService(capture, "us-west-2")

	assert.NoError(t, service.Create(context.Background(), "photos"))
	assert.Equal(t, types.BucketLocationConstraint("us-west-2"), got)
}

type bucketCaptureAPI struct {
	inner    BucketAPI
	onCreate func(*s3.CreateBucketInput)
}

func (c bucketCaptureAPI) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	c.onCreate(params)
	return c.inner.CreateBucket(ctx, params, optFns...)
}

func (c bucketCaptureAPI) DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	return c.inner.DeleteBucket(ctx, params, optFns...)
}

func (c bucketCaptureAPI) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	return c.inner.ListObjectsV2(ctx, params, optFns...)
}

func (c bucketCaptureAPI) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	return c.inner.DeleteObjects(ctx, params, optFns...)
}

func TestBucketDelete(t *testing.T) {
	t.Run("nonexistent bucket is benign", func(t *testing.T) {
		client := &fakeBucketAPI{listErr: apiError("NoSuchBucket")}
		service := NewBucketService(client, "us-west-2")

		assert.NoError(t, service.Delete(context.Background(), "never-created"))
		assert.Empty(t, client.removed)
	})

	t.Run("empties objects before removing bucket", func(t *testing.T) {
		client := &fakeBucketAPI{
			listPages: []*s3.ListObjectsV2Output{
				{
					Contents: []types.Object{
						{Key: aws.String("a.jpg")},
						{Key: aws.String("b.jpg")},
					},
					IsTruncated:           aws.Bool(true),
					NextContinuationToken: aws.String("token"),
				},
				{
					Contents: []types.Object{
						{Key: aws.String("c.jpg")},
					},
					IsTruncated: aws.Bool(false),
				},
			},
		}
		service := NewBucketService(client, "us-west-2")

		assert.NoError(t, service.Delete(context.Background(), "photos"))
		assert.Equal(t, 2, client.listCalls)
		assert.Len(t, client.deleted, 2)
		assert.Len(t, client.deleted[0], 2)
		assert.Len(t, client.deleted[1], 1)
		assert.Equal(t, []string{"photos"}, client.removed)
	})

	t.Run("empty bucket skips object deletion", func(t *testing.T) {
		client := &fakeBucketAPI{listPages: []*s3.ListObjectsV2Output{emptyPage()}}
		service := NewBucketService(client, "us-west-2")

		assert.NoError(t, service.Delete(context.Background(), "photos"))
		assert.Empty(t, client.deleted)
		assert.Equal(t, []string{"photos"}, client.removed)
	})

	t.Run("unexpected error propagates", func(t *testing.T) {
		client := &fakeBucketAPI{listErr: apiError("AccessDenied")}
		service := NewBucketService(client, "us-west-2")

		assert.Error(t, service.Delete(context.Background(), "photos"))
	})
}
