package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	msg := envelopeMessage(resp.Body())
	if msg == "" {
		msg = http.StatusText(code)
	}

	switch {
	case code == http.StatusBadRequest, code == http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case code == http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrUpstream, msg)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrServer, msg)
	default:
		return fmt.Errorf("http %d: %s", code, msg)
	}
}

// envelopeMessage pulls the message out of an API error envelope, falling
// back to the raw body for anything else.
func envelopeMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return strings.TrimSpace(string(body))
}
