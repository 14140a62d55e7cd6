package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// PublishAPI is the subset of the SNS client the SMS service uses.
type PublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSService sends text messages directly to phone numbers via SNS.
type SMSService struct {
	client PublishAPI
}

func NewSMSService(client PublishAPI) *SMSService {
	return &SMSService{client: client}
}

// Send publishes one text message to the given phone number. Delivery is
// best effort; the returned output carries the SNS message ID.
func (s *SMSService) Send(ctx context.Context, message, phoneNumber string) (*sns.PublishOutput, error) {
	result, err := s.client.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(phoneNumber),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish SMS: %w", err)
	}

	return result, nil
}
