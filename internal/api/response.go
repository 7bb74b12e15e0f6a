package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Response is the uniform outcome of a completed HTTP exchange. Transport
// failures never produce a Response; they are returned as errors instead.
type Response[T any] struct {
	StatusCode int
	// Status is the reason phrase, e.g. "Not Found".
	Status string
	// Body is nil when a successful response carried no payload.
	Body *T
	// ErrorBody holds the raw payload of a non-successful response.
	ErrorBody []byte
}

func (r *Response[T]) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Detail returns the server's "detail" field. Non-string details, such as
// validation error lists, are returned as raw JSON.
func (r *Response[T]) Detail() (string, bool) {
	if len(r.ErrorBody) == 0 || !gjson.ValidBytes(r.ErrorBody) {
		return "", false
	}
	res := gjson.GetBytes(r.ErrorBody, "detail")
	if !res.Exists() {
		return "", false
	}
	if res.Type == gjson.String {
		return res.Str, res.Str != ""
	}
	return res.Raw, true
}

// RawError returns the trimmed error payload.
func (r *Response[T]) RawError() string {
	return string(bytes.TrimSpace(r.ErrorBody))
}

func reasonPhrase(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if s := strings.TrimPrefix(resp.Status, prefix); s != "" && s != resp.Status {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
