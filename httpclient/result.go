package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/kbukum/qqconnect/errors"
)

// Result is the decoded body of one response. When the body was a JSON
// object its fields are available through the accessors; otherwise only
// Raw is meaningful.
type Result struct {
	raw        string
	payload    string
	data       map[string]any
	statusCode int
	header     http.Header
}

// StripJSONP removes a callback( ... ) wrapper, returning s unchanged when absent.
func StripJSONP(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "callback") {
		return s
	}
	lp := strings.IndexByte(trimmed, '(')
	rp := strings.LastIndexByte(trimmed, ')')
	if lp < 0 || rp <= lp {
		return s
	}
	return strings.TrimSpace(trimmed[lp+1 : rp])
}

// ParseBody decodes a response body. A body that is not a JSON object,
// after JSONP stripping, yields a Result holding only the raw text.
func ParseBody(body []byte) *Result {
	r := &Result{raw: string(body)}
	r.payload = StripJSONP(r.raw)

	dec := json.NewDecoder(strings.NewReader(r.payload))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil || data == nil || dec.More() {
		return r
	}
	r.data = data
	return r
}

// CheckAPIError inspects a decoded object for a remote failure: an "error"
// key first, then a nonzero "ret".
func (r *Result) CheckAPIError() *errors.APIError {
	if !r.IsJSON() {
		return nil
	}
	if code, ok := r.data["error"]; ok {
		apiErr := errors.NewAPIError(errors.ConventionError, FormatValue(code), r.String("error_description"))
		apiErr.HTTPStatus = r.statusCode
		return apiErr
	}
	if ret, ok := r.data["ret"]; ok && !isZero(ret) {
		apiErr := errors.NewAPIError(errors.ConventionRet, FormatValue(ret), r.String("msg"))
		apiErr.HTTPStatus = r.statusCode
		return apiErr
	}
	return nil
}

// isZero reports whether a ret value means success.
func isZero(v any) bool {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return err == nil && f == 0
	case bool:
		return !t
	default:
		return false
	}
}

// IsJSON reports whether the body decoded as a JSON object.
func (r *Result) IsJSON() bool { return r.data != nil }

// Raw returns the response body text as received.
func (r *Result) Raw() string { return r.raw }

// StatusCode returns the HTTP status of the response.
func (r *Result) StatusCode() int { return r.statusCode }

// Header returns the response headers.
func (r *Result) Header() http.Header { return r.header }

// Has reports whether key is present in the decoded object.
func (r *Result) Has(key string) bool {
	_, ok := r.data[key]
	return ok
}

// Get returns the decoded value of key. Numbers are json.Number.
func (r *Result) Get(key string) (any, bool) {
	v, ok := r.data[key]
	return v, ok
}

// String returns key rendered as text, or "" when absent.
func (r *Result) String(key string) string {
	v, ok := r.data[key]
	if !ok || v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any:
		b, _ := json.Marshal(v)
		return string(b)
	}
	return FormatValue(v)
}

// Int returns key as an integer.
func (r *Result) Int(key string) (int64, bool) {
	switch t := r.data[key].(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		return int64(f), err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Float returns key as a float.
func (r *Result) Float(key string) (float64, bool) {
	switch t := r.data[key].(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

// Bool returns key as a bool. Numbers are true when nonzero and strings
// follow strconv.ParseBool.
func (r *Result) Bool(key string) bool {
	switch t := r.data[key].(type) {
	case bool:
		return t
	case json.Number:
		return !isZero(t)
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

// Map returns the decoded object, or nil when the body was not JSON.
func (r *Result) Map() map[string]any { return r.data }

// Keys returns the keys of the decoded object in sorted order.
func (r *Result) Keys() []string {
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode unmarshals the JSON body into v.
func (r *Result) Decode(v any) error {
	if !r.IsJSON() {
		return errors.InvalidResponse("response body is not a JSON object")
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(r.payload)))
	if err := dec.Decode(v); err != nil {
		return errors.InvalidResponse(fmt.Sprintf("decode response: %v", err)).WithCause(err)
	}
	return nil
}
