package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
)

// CommonParams are always present on non-GET calls, blank when unset.
var CommonParams = []string{"access_token", "oauth_consumer_key", "openid", "format"}

// Params are the keyword parameters of one call. Values may be strings,
// numbers, bools, []byte, fmt.Stringer, or io.Reader for file uploads.
type Params map[string]any

// Clone returns a shallow copy of p. A nil p yields an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p)+len(CommonParams))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Scalars returns the non-file parameters as url.Values.
func (p Params) Scalars() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		if IsFile(v) {
			continue
		}
		values.Set(k, FormatValue(v))
	}
	return values
}

// HasFiles reports whether any parameter is a file value.
func (p Params) HasFiles() bool {
	for _, v := range p {
		if IsFile(v) {
			return true
		}
	}
	return false
}

// File is a named reader for upload parameters.
type File struct {
	name string
	r    io.Reader
}

// NewFile wraps r so that multipart encoding can see its file name.
func NewFile(name string, r io.Reader) *File {
	return &File{name: name, r: r}
}

// ErrNoFileContent is returned when reading a File that has no reader.
var ErrNoFileContent = errors.New("file has no content reader")

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	if f == nil || f.r == nil {
		return 0, ErrNoFileContent
	}
	return f.r.Read(p)
}

// Name returns the file name used to guess the content type.
func (f *File) Name() string { return f.name }

// IsFile reports whether v is a file-like upload value.
func IsFile(v any) bool {
	_, ok := v.(io.Reader)
	return ok
}

// fileName returns the Name() of a file value, or "".
func fileName(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}

// FormatValue renders a scalar parameter as text.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Escape percent-encodes s as UTF-8, with space as %20.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// EncodeQuery encodes the scalar parameters as k=v pairs joined by &,
// keys sorted. File values are skipped.
func EncodeQuery(p Params) string {
	var b strings.Builder
	for _, k := range p.Keys() {
		v := p[k]
		if IsFile(v) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(Escape(k))
		b.WriteByte('=')
		b.WriteString(Escape(FormatValue(v)))
	}
	return b.String()
}

// ParamsFromStruct converts a struct with `url` tags into Params.
// Multi-valued fields are joined with commas.
func ParamsFromStruct(v any) (Params, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	p := make(Params, len(values))
	for k, vs := range values {
		p[k] = strings.Join(vs, ",")
	}
	return p, nil
}

// appendQuery appends an encoded query to target.
func appendQuery(target, encoded string) string {
	if encoded == "" {
		return target
	}
	if strings.Contains(target, "?") {
		return target + "&" + encoded
	}
	return target + "?" + encoded
}
