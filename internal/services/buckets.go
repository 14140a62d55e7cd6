package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// BucketAPI is the subset of the S3 client the bucket service uses.
type BucketAPI interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// BucketService manages the lifecycle of the image upload bucket.
type BucketService struct {
	client BucketAPI
	region string
}

func NewBucketService(client BucketAPI, region string) *BucketService {
	return &BucketService{
		client: client,
		region: region,
	}
}

// Create creates the bucket in the configured region. A bucket that already
// exists and is owned by the caller counts as success.
func (s *BucketService) Create(ctx context.Context, name string) error {
	logger := zerolog.Ctx(ctx)

	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(name),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		},
	})
	if err != nil {
		if errorCode(err) == "BucketAlreadyOwnedByYou" {
			logger.Info().Str("bucket", name).Msg("S3 bucket already exists and you own it, proceeding")
			return nil
		}
		return fmt.Errorf("failed to create S3 bucket %s: %w", name, err)
	}

	logger.Info().Str("bucket", name).Msg("S3 bucket created")
	return nil
}

// Delete empties the bucket and removes it. A bucket that does not exist
// counts as success.
func (s *BucketService) Delete(ctx context.Context, name string) error {
	logger := zerolog.Ctx(ctx)

	if err := s.empty(ctx, name); err != nil {
		if errorCode(err) == "NoSuchBucket" {
			logger.Info().Str("bucket", name).Msg("S3 bucket does not exist, proceeding")
			return nil
		}
		return fmt.Errorf("failed to empty S3 bucket %s: %w", name, err)
	}

	if _, err := s.client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)}); err != nil {
		if errorCode(err) == "NoSuchBucket" {
			logger.Info().Str("bucket", name).Msg("S3 bucket does not exist, proceeding")
			return nil
		}
		return fmt.Errorf("failed to delete S3 bucket %s: %w", name, err)
	}

	logger.Info().Str("bucket", name).Msg("S3 bucket deleted")
	return nil
}

// empty deletes every object in the bucket, one page at a time.
func (s *BucketService) empty(ctx context.Context, name string) error {
	var continuationToken *string
	for {
		page, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(name),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return err
		}

		if len(page.Contents) > 0 {
			identifiers := make([]types.ObjectIdentifier, 0, len(page.Contents))
			for _, object := range page.Contents {
				identifiers = append(identifiers, types.ObjectIdentifier{Key: object.Key})
			}

			_, err = s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(name),
				Delete: &types.Delete{
					Objects: identifiers,
					Quiet:   aws.Bool(true),
				},
			})
			if err != nil {
				return err
			}
		}

		if !aws.ToBool(page.IsTruncated) {
			return nil
		}
		continuationToken = page.NextContinuationToken
	}
}
