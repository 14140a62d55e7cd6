// Package notify sends one text message per detected face to a phone number
// resolved from the parameter store at dispatch time.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
	"github.com/savaki/gox/slicex"
	"github.com/segmentio/ksuid"

	"github.com/savaki/face-alert/internal/detect"
)

// PhoneNumberResolver looks up the destination phone number.
type PhoneNumberResolver interface {
	GetPhoneNumber(ctx context.Context, name string) (string, error)
}

// SMSSender publishes a single text message.
type SMSSender interface {
	Send(ctx context.Context, message, phoneNumber string) (*sns.PublishOutput, error)
}

// Dispatcher resolves the phone number once per dispatch, never caching it
// across invocations, and sends one message per face.
type Dispatcher struct {
	resolver  PhoneNumberResolver
	sms       SMSSender
	paramName string
}

func NewDispatcher(resolver PhoneNumberResolver, sms SMSSender, paramName string) *Dispatcher {
	return &Dispatcher{
		resolver:  resolver,
		sms:       sms,
		paramName: paramName,
	}
}

// Dispatch sends one message per face. If the phone number cannot be
// resolved the whole dispatch is aborted and no message is sent. Individual
// send failures are logged and the remaining messages still go out; the last
// call's result is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, faces []types.FaceDetail) (*sns.PublishOutput, error) {
	logger := zerolog.Ctx(ctx).With().Str("dispatch_id", ksuid.New().String()).Logger()
	ctx = logger.WithContext(ctx)

	phoneNumber, err := d.resolver.GetPhoneNumber(ctx, d.paramName)
	if err != nil {
		logger.Error().Err(err).Str("parameter", d.paramName).Msg("Unable to retrieve phone number")
		return nil, fmt.Errorf("failed to resolve phone number: %w", err)
	}

	var last *sns.PublishOutput
	for _, message := range slicex.Map(faces, detect.AgeMessage) {
		result, err := d.sms.Send(ctx, message, phoneNumber)
		if err != nil {
			logger.Error().Err(err).Msg("Unable to send notification")
			continue
		}
		logger.Info().Str("message", message).Msg("Notification sent")
		last = result
	}

	return last, nil
}
