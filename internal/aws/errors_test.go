package aws

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func TestClassifyCredentialErrors(t *testing.T) {
	codes := []string{
		"AccessDenied",
		"AccessDeniedException",
		"UnrecognizedClientException",
		"InvalidClientTokenId",
		"ExpiredToken",
		"SignatureDoesNotMatch",
	}

	for _, code := range codes {
		err := &smithy.GenericAPIError{Code: code, Message: "denied"}
		if Classify(err) != ErrorKindCredentials {
			t.Fatalf("expected %s to classify as credentials error", code)
		}
		if !IsCredentialsError(err) {
			t.Fatalf("expected IsCredentialsError=true for %s", code)
		}
	}
}

func TestClassifyTransientErrors(t *testing.T) {
	codes := []string{
		"Throttling",
		"ThrottlingException",
		"TooManyRequestsException",
		"RequestLimitExceeded",
		"ServiceUnavailable",
	}

	for _, code := range codes {
		err := &smithy.GenericAPIError{Code: code, Message: "slow down"}
		if Classify(err) != ErrorKindTransient {
			t.Fatalf("expected %s to classify as transient error", code)
		}
		if !IsTransientError(err) {
			t.Fatalf("expected IsTransientError=true for %s", code)
		}
	}
}

func TestClassifyWrappedError(t *testing.T) {
	inner := &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
	wrapped := fmt.Errorf("listing users: %w", fmt.Errorf("api call: %w", inner))

	if Classify(wrapped) != ErrorKindCredentials {
		t.Fatalf("expected classification to see through wrapping")
	}
}

func TestClassifyUnknownAndNil(t *testing.T) {
	if Classify(nil) != ErrorKindUnknown {
		t.Fatalf("expected unknown kind for nil error")
	}
	if Classify(errors.New("boom")) != ErrorKindUnknown {
		t.Fatalf("expected unknown kind for plain error")
	}
	if Classify(&smithy.GenericAPIError{Code: "NoSuchEntity"}) != ErrorKindUnknown {
		t.Fatalf("expected unknown kind for unlisted API code")
	}
}

func TestClassifyDeadlineExceeded(t *testing.T) {
	err := fmt.Errorf("calling IAM: %w", context.DeadlineExceeded)
	if Classify(err) != ErrorKindTransient {
		t.Fatalf("expected deadline exceeded to classify as transient")
	}
}
