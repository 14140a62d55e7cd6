// Package services wraps the AWS calls the handler and lifecycle manager
// depend on. Each wrapper accepts the narrow client interface it needs so
// tests can substitute fakes.
package services

import (
	"errors"

	"github.com/aws/smithy-go"
)

// errorCode extracts the AWS API error code, or "" for non-API errors.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
