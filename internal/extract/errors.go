package extract

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Kind is the closed taxonomy of extraction failures surfaced to callers.
// The client classifies every provider or transport failure at the boundary;
// a raw low-level error never escapes this package.
type Kind int

const (
	// KindUnclassified is any transport/provider failure not covered below.
	KindUnclassified Kind = iota
	// KindConfigurationMissing means no API credential is configured.
	KindConfigurationMissing
	// KindQuotaExhausted means the provider signaled rate/quota limiting.
	// This is the only kind that arms the convert cooldown gate.
	KindQuotaExhausted
	// KindModelUnavailable means the requested model id is invalid or gone.
	KindModelUnavailable
	// KindAuthRejected means the provider rejected the credential.
	KindAuthRejected
	// KindEmptyResponse means the provider returned no usable content.
	KindEmptyResponse
	// KindMalformedResponse means the response could not be parsed into a
	// listing record.
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindQuotaExhausted:
		return "quota_exhausted"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindAuthRejected:
		return "auth_rejected"
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformedResponse:
		return "malformed_response"
	}
	return "unclassified"
}

// Error is a classified extraction failure.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, msg: msg, cause: cause}
}

// KindOf returns the classification of err, or KindUnclassified when err is
// not an extraction error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

// classify maps a provider error onto the failure taxonomy. Structured API
// errors are preferred; message-substring inspection is a last resort for
// transports that surface opaque errors (a known fragility inherited from
// provider SDKs that stringify status details).
func classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return newError(KindQuotaExhausted, "provider quota exhausted", err)
		case 404:
			return newError(KindModelUnavailable, "model not available", err)
		case 401, 403:
			return newError(KindAuthRejected, "credential rejected", err)
		}
		return newError(KindUnclassified, "provider error", err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "quota"), strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return newError(KindQuotaExhausted, "provider quota exhausted", err)
	case strings.Contains(msg, "404"), strings.Contains(msg, "NOT_FOUND"):
		return newError(KindModelUnavailable, "model not available", err)
	case strings.Contains(msg, "401"), strings.Contains(msg, "403"), strings.Contains(msg, "PERMISSION_DENIED"), strings.Contains(msg, "API key not valid"):
		return newError(KindAuthRejected, "credential rejected", err)
	}
	return newError(KindUnclassified, "provider error", err)
}
