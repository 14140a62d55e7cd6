package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/rs/zerolog"

	apperrors "github.com/savaki/face-alert/internal/errors"
)

// CreatedByTag marks the identity that created the phone number parameter.
const CreatedByTag = "CreatedBy"

// ParameterAPI is the subset of the SSM client the parameter store uses.
type ParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
	ListTagsForResource(ctx context.Context, params *ssm.ListTagsForResourceInput, optFns ...func(*ssm.Options)) (*ssm.ListTagsForResourceOutput, error)
	AddTagsToResource(ctx context.Context, params *ssm.AddTagsToResourceInput, optFns ...func(*ssm.Options)) (*ssm.AddTagsToResourceOutput, error)
}

// ParameterStore manages the SecureString parameter holding the destination
// phone number. Ownership is advisory: a CreatedBy tag compared against the
// caller's STS user ID.
type ParameterStore struct {
	client ParameterAPI
}

func NewParameterStore(client ParameterAPI) *ParameterStore {
	return &ParameterStore{client: client}
}

// GetPhoneNumber reads the parameter value with decryption.
func (s *ParameterStore) GetPhoneNumber(ctx context.Context, name string) (string, error) {
	result, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get SSM parameter %s: %w", name, err)
	}

	if result.Parameter == nil || aws.ToString(result.Parameter.Value) == "" {
		return "", fmt.Errorf("SSM parameter %s: %w", name, apperrors.ErrEmptyPhoneNumber)
	}

	return aws.ToString(result.Parameter.Value), nil
}

// CreatorOf returns the user ID recorded in the parameter's CreatedBy tag.
// A missing parameter or missing tag yields FallbackUserID.
func (s *ParameterStore) CreatorOf(ctx context.Context, name string) string {
	logger := zerolog.Ctx(ctx)
	owner := FallbackUserID

	result, err := s.client.ListTagsForResource(ctx, &ssm.ListTagsForResourceInput{
		ResourceType: types.ResourceTypeForTaggingParameter,
		ResourceId:   aws.String(name),
	})
	if err != nil {
		if errorCode(err) != "InvalidResourceId" {
			logger.Error().Err(err).Str("parameter", name).Msg("Unable to get SSM parameter tags")
		}
		return owner
	}

	for _, tag := range result.TagList {
		if aws.ToString(tag.Key) == CreatedByTag {
			owner = aws.ToString(tag.Value)
		}
	}

	return owner
}

// Save creates the parameter tagged with the current user. If the parameter
// already exists it is overwritten and re-tagged, but only when the current
// user matches the recorded creator; otherwise the value is left untouched
// and the skip is logged.
func (s *ParameterStore) Save(ctx context.Context, name, value, currentUser string) error {
	logger := zerolog.Ctx(ctx)

	_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:  aws.String(name),
		Value: aws.String(value),
		Type:  types.ParameterTypeSecureString,
		Tags: []types.Tag{
			{Key: aws.String(CreatedByTag), Value: aws.String(currentUser)},
		},
	})
	if err == nil {
		logger.Info().Str("parameter", name).Msg("SSM parameter created")
		return nil
	}

	if errorCode(err) != "ParameterAlreadyExists" {
		return fmt.Errorf("failed to create SSM parameter %s: %w", name, err)
	}

	if owner := s.CreatorOf(ctx, name); owner != currentUser {
		logger.Warn().
			Str("parameter", name).
			Str("owner", owner).
			Msg("SSM parameter was not created by you, skipping update")
		return nil
	}

	// Tags cannot be combined with Overwrite, so re-tag separately.
	_, err = s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to update SSM parameter %s: %w", name, err)
	}

	_, err = s.client.AddTagsToResource(ctx, &ssm.AddTagsToResourceInput{
		ResourceType: types.ResourceTypeForTaggingParameter,
		ResourceId:   aws.String(name),
		Tags: []types.Tag{
			{Key: aws.String(CreatedByTag), Value: aws.String(currentUser)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to tag SSM parameter %s: %w", name, err)
	}

	logger.Info().Str("parameter", name).Msg("SSM parameter updated")
	return nil
}

// Delete removes the parameter when the current user matches the recorded
// creator; otherwise it warns and skips. A parameter that does not exist
// counts as success.
func (s *ParameterStore) Delete(ctx context.Context, name, currentUser string) error {
	logger := zerolog.Ctx(ctx)

	if owner := s.CreatorOf(ctx, name); owner != currentUser {
		logger.Warn().
			Str("parameter", name).
			Str("owner", owner).
			Msg("SSM parameter was not created by you, skipping delete")
		return nil
	}

	_, err := s.client.DeleteParameter(ctx, &ssm.DeleteParameterInput{Name: aws.String(name)})
	if err != nil {
		if errorCode(err) == "ParameterNotFound" {
			logger.Info().Str("parameter", name).Msg("SSM parameter does not exist, proceeding")
			return nil
		}
		return fmt.Errorf("failed to delete SSM parameter %s: %w", name, err)
	}

	logger.Info().Str("parameter", name).Msg("SSM parameter deleted")
	return nil
}
