// Package detect reacts to image uploads: it runs face detection on the new
// object and forwards the detected faces to the notification dispatcher.
package detect

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
)

// FaceDetector runs face detection against an object already stored in S3.
type FaceDetector interface {
	DetectFaces(ctx context.Context, bucket, key string) ([]types.FaceDetail, error)
}

// Dispatcher forwards detected faces as notifications.
type Dispatcher interface {
	Dispatch(ctx context.Context, faces []types.FaceDetail) (*sns.PublishOutput, error)
}

// Handler processes S3 ObjectCreated events.
type Handler struct {
	detector   FaceDetector
	dispatcher Dispatcher
}

func NewHandler(detector FaceDetector, dispatcher Dispatcher) *Handler {
	return &Handler{
		detector:   detector,
		dispatcher: dispatcher,
	}
}

// HandleS3Event runs face detection for every record in the event and
// returns the detected faces. An inference failure is logged and yields an
// empty result; it is not propagated, so the event source sees success.
func (h *Handler) HandleS3Event(ctx context.Context, event events.S3Event) ([]types.FaceDetail, error) {
	var detected []types.FaceDetail
	for i := range event.Records {
		detected = append(detected, h.processRecord(ctx, &event.Records[i])...)
	}
	return detected, nil
}

func (h *Handler) processRecord(ctx context.Context, record *events.S3EventRecord) []types.FaceDetail {
	logger := zerolog.Ctx(ctx)
	bucket := record.S3.Bucket.Name
	key := record.S3.Object.Key

	faces, err := h.detector.DetectFaces(ctx, bucket, key)
	if err != nil {
		logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("Unable to run face detection")
		return nil
	}

	logger.Info().Int("count", len(faces)).Str("key", key).Msg("Detected faces")
	for _, face := range faces {
		logger.Info().Msg(AgeMessage(face))
		logger.Debug().Interface("face", face).Msg("Face attributes")
	}

	if len(faces) == 0 {
		return nil
	}

	if _, err := h.dispatcher.Dispatch(ctx, faces); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Unable to dispatch notifications")
	}

	return faces
}

// AgeMessage renders the human-readable age range summary for one face.
func AgeMessage(face types.FaceDetail) string {
	var low, high int32
	if face.AgeRange != nil {
		low = aws.ToInt32(face.AgeRange.Low)
		high = aws.ToInt32(face.AgeRange.High)
	}
	return fmt.Sprintf("The detected face is between %d and %d years old", low, high)
}
