package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path"
	"strconv"
	"strings"
	"time"
)

// uploadFileName is sent as the filename of every file part.
const uploadFileName = "hidden"

var contentTypes = map[string]string{
	".png":  "image/png",
	".gif":  "image/gif",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
}

// GuessContentType maps a file name extension to a MIME type,
// defaulting to application/octet-stream.
func GuessContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Boundary returns the multipart boundary derived from now.
func Boundary(now time.Time) string {
	return fmt.Sprintf("----------%#x", now.UnixMilli())
}

// MultipartBody is an encoded multipart/form-data request body.
type MultipartBody struct {
	Boundary string
	Data     []byte
}

// ContentType returns the Content-Type header value for the body.
func (m *MultipartBody) ContentType() string {
	return "multipart/form-data; boundary=" + m.Boundary
}

// EncodeMultipart builds a multipart body from p. Each file value becomes
// a part with Content-Length and a Content-Type guessed from its name;
// scalars become plain form fields. Parts follow sorted key order.
func EncodeMultipart(p Params, now time.Time) (*MultipartBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	boundary := Boundary(now)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, err
	}

	for _, k := range p.Keys() {
		v := p[k]
		if !IsFile(v) {
			if err := w.WriteField(k, FormatValue(v)); err != nil {
				return nil, err
			}
			continue
		}

		content, err := io.ReadAll(v.(io.Reader))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", k, err)
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(k)+`"; filename="`+uploadFileName+`"`)
		header.Set("Content-Length", strconv.Itoa(len(content)))
		header.Set("Content-Type", GuessContentType(fileName(v)))
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(content); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return &MultipartBody{Boundary: boundary, Data: buf.Bytes()}, nil
}

// escapeQuotes replaces special characters in header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
