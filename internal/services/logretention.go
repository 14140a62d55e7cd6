package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/rs/zerolog"
)

// LogRetentionAPI is the subset of the CloudWatch Logs client the retention
// service uses.
type LogRetentionAPI interface {
	PutRetentionPolicy(ctx context.Context, params *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error)
}

// LogRetentionService trims retention on the log group the deployed handler
// writes to, so teardown does not leave logs accruing indefinitely.
type LogRetentionService struct {
	client LogRetentionAPI
}

func NewLogRetentionService(client LogRetentionAPI) *LogRetentionService {
	return &LogRetentionService{client: client}
}

// SetRetention sets the retention policy on the given log group.
func (s *LogRetentionService) SetRetention(ctx context.Context, group string, days int32) error {
	logger := zerolog.Ctx(ctx)

	_, err := s.client.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    aws.String(group),
		RetentionInDays: aws.Int32(days),
	})
	if err != nil {
		return fmt.Errorf("failed to change retention policy of log group %s: %w", group, err)
	}

	logger.Info().Str("log_group", group).Int32("days", days).Msg("Log retention updated")
	return nil
}
