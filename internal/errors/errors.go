package errors

import "errors"

var (
	ErrUnknownAction        = errors.New("unknown action, expected deploy or delete")
	ErrParameterValueNeeded = errors.New("--phone-number-parameter-value is required when deploying")
	ErrEmptyPhoneNumber     = errors.New("phone number parameter has no value")
)
