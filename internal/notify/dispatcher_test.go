package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
)

type stubResolver func(ctx context.Context, name string) (string, error)

func (f stubResolver) GetPhoneNumber(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

type sentMessage struct {
	message     string
	phoneNumber string
}

type stubSender struct {
	sent    []sentMessage
	failAt  int // 1-based index of the send that fails, 0 for never
	results []*sns.PublishOutput
}

func (s *stubSender) Send(_ context.Context, message, phoneNumber string) (*sns.PublishOutput, error) {
	s.sent = append(s.sent, sentMessage{message: message, phoneNumber: phoneNumber})
	if s.failAt == len(s.sent) {
		return nil, errors.New("throttled")
	}
	result := &sns.PublishOutput{MessageId: aws.String(fmt.Sprintf("msg-%d", len(s.sent)))}
	s.results = append(s.results, result)
	return result, nil
}

func face(low, high int32) types.FaceDetail {
	return types.FaceDetail{
		AgeRange: &types.AgeRange{
			Low:  aws.Int32(low),
			High: aws.Int32(high),
		},
	}
}

func TestDispatchSendsOneMessagePerFace(t *testing.T) {
	tests := []struct {
		name  string
		faces []types.FaceDetail
	}{
		{name: "single face", faces: []types.FaceDetail{face(20, 30)}},
		{name: "three faces", faces: []types.FaceDetail{face(20, 30), face(31, 45), face(5, 9)}},
		{name: "no faces", faces: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := stubResolver(func(_ context.Context, name string) (string, error) {
				assert.Equal(t, "/demo/phone-number", name)
				return "+15551230000", nil
			})
			sender := &stubSender{}

			dispatcher := NewDispatcher(resolver, sender, "/demo/phone-number")
			last, err := dispatcher.Dispatch(context.Background(), tt.faces)

			assert.NoError(t, err)
			assert.Len(t, sender.sent, len(tt.faces))
			for _, sent := range sender.sent {
				assert.Equal(t, "+15551230000", sent.phoneNumber)
			}
			if len(tt.faces) > 0 {
				assert.Equal(t, sender.results[len(sender.results)-1], last)
			} else {
				assert.Nil(t, last)
			}
		})
	}
}

func TestDispatchMessageText(t *testing.T) {
	resolver := stubResolver(func(context.Context, string) (string, error) {
		return "+15551230000", nil
	})
	sender := &stubSender{}

	dispatcher := NewDispatcher(resolver, sender, "/demo/phone-number")
	_, err := dispatcher.Dispatch(context.Background(), []types.FaceDetail{face(20, 30)})

	assert.NoError(t, err)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, "The detected face is between 20 and 30 years old", sender.sent[0].message)
}

func TestDispatchAbortsWhenPhoneNumberUnavailable(t *testing.T) {
	resolver := stubResolver(func(context.Context, string) (string, error) {
		return "", errors.New("parameter not found")
	})
	sender := &stubSender{}

	dispatcher := NewDispatcher(resolver, sender, "/demo/phone-number")
	last, err := dispatcher.Dispatch(context.Background(), []types.FaceDetail{face(20, 30), face(31, 45)})

	assert.Error(t, err)
	assert.Nil(t, last)
	assert.Empty(t, sender.sent, "no message may be sent when the phone number cannot be resolved")
}

func TestDispatchContinuesPastSendFailure(t *testing.T) {
	resolver := stubResolver(func(context.Context, string) (string, error) {
		return "+15551230000", nil
	})
	sender := &stubSender{failAt: 2}

	dispatcher := NewDispatcher(resolver, sender, "/demo/phone-number")
	last, err := dispatcher.Dispatch(context.Background(), []types.FaceDetail{face(20, 30), face(31, 45), face(5, 9)})

	assert.NoError(t, err)
	assert.Len(t, sender.sent, 3)
	assert.Equal(t, "msg-3", aws.ToString(last.MessageId))
}
