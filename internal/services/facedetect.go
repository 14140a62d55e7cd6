package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// FaceDetectionAPI is the subset of the Rekognition client the detector uses.
type FaceDetectionAPI interface {
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
}

// FaceDetector requests face detection for objects already stored in S3.
type FaceDetector struct {
	client FaceDetectionAPI
}

func NewFaceDetector(client FaceDetectionAPI) *FaceDetector {
	return &FaceDetector{client: client}
}

// DetectFaces runs detection with all facial attributes for the given object.
func (s *FaceDetector) DetectFaces(ctx context.Context, bucket, key string) ([]types.FaceDetail, error) {
	result, err := s.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		Attributes: []types.Attribute{types.AttributeAll},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect faces in s3://%s/%s: %w", bucket, key, err)
	}

	return result.FaceDetails, nil
}
