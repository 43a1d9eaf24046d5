package aws

import (
	"context"
	"errors"
	"net"

	"github.com/aws/smithy-go"
)

// ErrorKind classifies an AWS API failure so the caller can decide
// whether to abort outright or treat the run as retryable.
type ErrorKind int

const (
	// ErrorKindUnknown is any failure that is neither a credential
	// problem nor a known transient condition.
	ErrorKindUnknown ErrorKind = iota
	// ErrorKindCredentials covers missing, expired or unauthorized
	// credentials. These are fatal setup errors.
	ErrorKindCredentials
	// ErrorKindTransient covers throttling, timeouts and network
	// failures. Retrying is the caller's decision.
	ErrorKindTransient
)

var credentialErrorCodes = map[string]struct{}{
	"AccessDenied":                {},
	"AccessDeniedException":       {},
	"UnauthorizedAccess":          {},
	"UnrecognizedClientException": {},
	"InvalidClientTokenId":        {},
	"ExpiredToken":                {},
	"ExpiredTokenException":       {},
	"SignatureDoesNotMatch":       {},
	"MissingAuthenticationToken":  {},
}

var transientErrorCodes = map[string]struct{}{
	"Throttling":               {},
	"ThrottlingException":      {},
	"TooManyRequestsException": {},
	"RequestLimitExceeded":     {},
	"RequestTimeout":           {},
	"ServiceUnavailable":       {},
	"InternalError":            {},
	"InternalServiceError":     {},
}

// Classify maps an error returned by an AWS API call to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindUnknown
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if _, ok := credentialErrorCodes[code]; ok {
			return ErrorKindCredentials
		}
		if _, ok := transientErrorCodes[code]; ok {
			return ErrorKindTransient
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorKindTransient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindTransient
	}

	return ErrorKindUnknown
}

// IsCredentialsError returns true for fatal credential or permission failures.
func IsCredentialsError(err error) bool {
	return Classify(err) == ErrorKindCredentials
}

// IsTransientError returns true for throttling and network failures.
func IsTransientError(err error) bool {
	return Classify(err) == ErrorKindTransient
}
