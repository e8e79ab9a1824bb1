package crm

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strings"
)

// ErrorKind classifies a RequestError.
type ErrorKind int

// Error kinds.
const (
	KindUnknown ErrorKind = iota
	KindBuild
	KindInvalidArgument
	KindInvalidURL
	KindBadRequest
	KindInvalidResponseCode
	KindParse
	KindPageBuild
	KindInvalidRequestMaker
)

// Sentinel errors, one per kind. A *RequestError matches the sentinel of its
// kind with errors.Is.
var (
	ErrUnknown             = errors.New("unknown error")
	ErrBuild               = errors.New("build error")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidURL          = errors.New("invalid url")
	ErrBadRequest          = errors.New("bad request")
	ErrInvalidResponseCode = errors.New("invalid response code")
	ErrParse               = errors.New("parse error")
	ErrPageBuild           = errors.New("page build error")
	ErrInvalidRequestMaker = errors.New("invalid request maker")
)

// Static errors for err113 compliance.
var (
	ErrNoMoreItems = errors.New("no more items")
)

var kindSentinels = map[ErrorKind]error{
	KindUnknown:             ErrUnknown,
	KindBuild:               ErrBuild,
	KindInvalidArgument:     ErrInvalidArgument,
	KindInvalidURL:          ErrInvalidURL,
	KindBadRequest:          ErrBadRequest,
	KindInvalidResponseCode: ErrInvalidResponseCode,
	KindParse:               ErrParse,
	KindPageBuild:           ErrPageBuild,
	KindInvalidRequestMaker: ErrInvalidRequestMaker,
}

// String returns the sentinel message for the kind.
func (k ErrorKind) String() string {
	if sentinel, ok := kindSentinels[k]; ok {
		return sentinel.Error()
	}

	return fmt.Sprintf("error kind %d", int(k))
}

// RequestError is the single error type raised by the client pipeline.
// Fields are populated at the point of failure and are not modified
// afterwards.
type RequestError struct {
	Kind         ErrorKind
	Reason       string
	URL          string
	Payload      string
	Parameters   *Params
	Headers      map[string]string
	ResponseCode int
	Body         string
	Cause        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	var builder strings.Builder

	builder.WriteString(e.Kind.String())

	if e.Reason != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Reason)
	}

	if e.ResponseCode != 0 {
		fmt.Fprintf(&builder, " (status: %d)", e.ResponseCode)
	}

	if e.URL != "" {
		fmt.Fprintf(&builder, " (url: %s)", e.URL)
	}

	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}

	return builder.String()
}

// Unwrap returns the triggering error.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's kind.
func (e *RequestError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// RequestDetails describes the request a transport failure belongs to.
type RequestDetails struct {
	URL        string
	Payload    string
	Parameters *Params
	Headers    map[string]string
}

// NewRequestError creates an error of the given kind carrying copies of the
// request details.
func NewRequestError(kind ErrorKind, reason string, details RequestDetails, cause error) *RequestError {
	return &RequestError{
		Kind:       kind,
		Reason:     reason,
		URL:        details.URL,
		Payload:    details.Payload,
		Parameters: details.Parameters.Clone(),
		Headers:    maps.Clone(details.Headers),
		Cause:      cause,
	}
}

// NewResponseCodeError creates an InvalidResponseCode error.
func NewResponseCodeError(code int, body string, details RequestDetails) *RequestError {
	err := NewRequestError(KindInvalidResponseCode, http.StatusText(code), details, nil)
	err.ResponseCode = code
	err.Body = body

	return err
}

// NewBuildError creates a Build error.
func NewBuildError(reason string) *RequestError {
	return &RequestError{Kind: KindBuild, Reason: reason}
}

// NewInvalidArgumentError creates an InvalidArgument error.
func NewInvalidArgumentError(reason string) *RequestError {
	return &RequestError{Kind: KindInvalidArgument, Reason: reason}
}

// NewPageBuildError creates a PageBuild error.
func NewPageBuildError(reason string) *RequestError {
	return &RequestError{Kind: KindPageBuild, Reason: reason}
}

// NewParseError creates a Parse error wrapping the engine failure.
func NewParseError(reason string, cause error) *RequestError {
	return &RequestError{Kind: KindParse, Reason: reason, Cause: cause}
}

// NewInvalidRequestMakerError creates an InvalidRequestMaker error.
func NewInvalidRequestMakerError(name string) *RequestError {
	return &RequestError{Kind: KindInvalidRequestMaker, Reason: fmt.Sprintf("unknown request maker %q", name)}
}

// KindOf returns the kind of the first RequestError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.Kind, true
	}

	return KindUnknown, false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.ResponseCode
	}

	return 0
}

// IsBuild checks if the error is a configuration build error.
func IsBuild(err error) bool {
	return errors.Is(err, ErrBuild)
}

// IsInvalidArgument checks if the error is an invalid argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsInvalidURL checks if the error is an invalid URL error.
func IsInvalidURL(err error) bool {
	return errors.Is(err, ErrInvalidURL)
}

// IsBadRequest checks if the error is a transport fault.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// IsInvalidResponseCode checks if the error is a non-2xx response.
func IsInvalidResponseCode(err error) bool {
	return errors.Is(err, ErrInvalidResponseCode)
}

// IsUnknown checks if the error is an unclassified failure.
func IsUnknown(err error) bool {
	return errors.Is(err, ErrUnknown)
}

// IsParse checks if the error is a (de)serialization failure.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsPageBuild checks if the error is a pagination bounds error.
func IsPageBuild(err error) bool {
	return errors.Is(err, ErrPageBuild)
}

// IsInvalidRequestMaker checks if the error names an unknown request maker.
func IsInvalidRequestMaker(err error) bool {
	return errors.Is(err, ErrInvalidRequestMaker)
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return IsInvalidResponseCode(err) && StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return IsInvalidResponseCode(err) && StatusCode(err) == http.StatusUnauthorized
}
