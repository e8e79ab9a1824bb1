package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// ValidateURL checks that rawURL is a well-formed absolute URL.
func ValidateURL(rawURL string) error {
	return validateURL(crm.RequestDetails{URL: rawURL})
}

// BuildURL appends params to rawURL as an encoded query string. Parameters
// keep their insertion order and no "?" is added when there are none.
func BuildURL(rawURL string, params *crm.Params) (string, error) {
	return buildURL(crm.RequestDetails{URL: rawURL, Parameters: params})
}

func validateURL(details crm.RequestDetails) error {
	if strings.TrimSpace(details.URL) == "" {
		return crm.NewRequestError(crm.KindInvalidURL, "url is required", details, nil)
	}

	parsed, err := url.ParseRequestURI(details.URL)
	if err != nil {
		return crm.NewRequestError(crm.KindInvalidURL, "malformed url", details, err)
	}

	if !parsed.IsAbs() || parsed.Host == "" {
		return crm.NewRequestError(crm.KindInvalidURL, "url must be absolute", details, nil)
	}

	return nil
}

func buildURL(details crm.RequestDetails) (string, error) {
	err := validateURL(details)
	if err != nil {
		return "", err
	}

	if details.Parameters.Len() == 0 {
		return details.URL, nil
	}

	var (
		builder   strings.Builder
		encodeErr error
	)

	builder.WriteString(details.URL)

	separator := "?"
	if strings.Contains(details.URL, "?") {
		separator = "&"
	}

	details.Parameters.Each(func(key string, value interface{}) {
		if encodeErr != nil {
			return
		}

		formatted, err := formatValue(value)
		if err != nil {
			encodeErr = crm.NewRequestError(crm.KindInvalidURL, fmt.Sprintf("cannot encode parameter %q", key), details, err)

			return
		}

		builder.WriteString(separator)
		builder.WriteString(url.QueryEscape(key))
		builder.WriteString("=")
		builder.WriteString(url.QueryEscape(formatted))

		separator = "&"
	})

	if encodeErr != nil {
		return "", encodeErr
	}

	return builder.String(), nil
}

func formatValue(value interface{}) (string, error) {
	switch typed := value.(type) {
	case []string:
		return strings.Join(typed, ","), nil
	case crm.Filter:
		return typed.FilterValue(), nil
	}

	formatted, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("formatting %T: %w", value, err)
	}

	return formatted, nil
}
