package http

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// EncodePayloadAttribute form-encodes a single attribute value. A nil value
// stays nil.
func EncodePayloadAttribute(value *string) (*string, error) {
	if value == nil {
		return nil, nil //nolint:nilnil // nil in, nil out
	}

	if !utf8.ValidString(*value) {
		return nil, crm.NewRequestError(crm.KindInvalidURL, "payload attribute is not valid UTF-8", crm.RequestDetails{}, nil)
	}

	encoded := url.QueryEscape(*value)

	return &encoded, nil
}

// EncodeForm renders params as an application/x-www-form-urlencoded body in
// insertion order.
func EncodeForm(params *crm.Params) (string, error) {
	pairs := make([]string, 0, params.Len())

	var encodeErr error

	params.Each(func(key string, value interface{}) {
		if encodeErr != nil {
			return
		}

		formatted, err := formatValue(value)
		if err != nil {
			encodeErr = crm.NewRequestError(crm.KindInvalidURL, "cannot encode form field "+key, crm.RequestDetails{}, err)

			return
		}

		encodedKey, err := EncodePayloadAttribute(&key)
		if err != nil {
			encodeErr = err

			return
		}

		encodedValue, err := EncodePayloadAttribute(&formatted)
		if err != nil {
			encodeErr = err

			return
		}

		pairs = append(pairs, *encodedKey+"="+*encodedValue)
	})

	if encodeErr != nil {
		return "", encodeErr
	}

	return strings.Join(pairs, "&"), nil
}
