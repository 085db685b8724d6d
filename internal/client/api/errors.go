package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTimeout     = errors.New("api_timeout")
	ErrUnavailable = errors.New("api_unavailable")
	ErrNotLoggedIn = errors.New("not_logged_in")
)

// StatusError is a non-2xx reply from the server.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
	Meta       map[string]string
	RequestID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error [%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsCode reports whether err is a StatusError carrying code.
func IsCode(err error, code string) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

type errorEnvelope struct {
	Error struct {
		Code      string            `json:"code"`
		Message   string            `json:"message"`
		Meta      map[string]string `json:"meta"`
		RequestID string            `json:"request_id"`
	} `json:"error"`
}

func decodeError(resp *http.Response) error {
	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Error.Code != "" {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Code:       env.Error.Code,
			Message:    env.Error.Message,
			Meta:       env.Error.Meta,
			RequestID:  env.Error.RequestID,
		}
	}
	return &StatusError{
		StatusCode: resp.StatusCode,
		Code:       "unexpected_status",
		Message:    fmt.Sprintf("unexpected status: %d", resp.StatusCode),
	}
}
