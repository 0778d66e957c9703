// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned for responses outside of the 2xx range
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("received status code: %d", e.Code)
	}
	return fmt.Sprintf("received status code: %d: %s", e.Code, e.Body)
}

// NotFound reports whether [err] carries a 404 response
func NotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}

// ErrorMessage extracts the message a user should see for [err]. A JSON
// error body is searched for "error_description", then "message", then
// "error". Anything else falls back to err.Error().
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		body := map[string]interface{}{}
		if json.Unmarshal([]byte(statusErr.Body), &body) == nil {
			for _, key := range []string{"error_description", "message", "error"} {
				if msg, ok := body[key].(string); ok && msg != "" {
					return msg
				}
			}
		}
	}
	return err.Error()
}
