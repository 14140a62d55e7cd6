package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
)

// FallbackUserID stands in for the caller identity when STS lookup fails or
// the parameter carries no CreatedBy tag. Two callers who both fail identity
// resolution appear to share ownership; the check is advisory, not access
// control.
const FallbackUserID = "lt-chalice-user"

// CallerIdentityAPI is the subset of the STS client the identity service uses.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// IdentityService resolves the current caller's user ID for ownership tags.
type IdentityService struct {
	client CallerIdentityAPI
}

func NewIdentityService(client CallerIdentityAPI) *IdentityService {
	return &IdentityService{client: client}
}

// CurrentUser returns the caller's STS user ID, or FallbackUserID with a
// warning when the lookup fails.
func (s *IdentityService) CurrentUser(ctx context.Context) string {
	logger := zerolog.Ctx(ctx)

	result, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		logger.Warn().Err(err).Str("default", FallbackUserID).Msg("Unable to retrieve current user, using default")
		return FallbackUserID
	}

	return aws.ToString(result.UserId)
}
