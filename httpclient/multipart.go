package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/textproto"
	"slices"
	"strings"
)

// MultipartBody is a multipart/form-data body. Use it as Request.Body.
type MultipartBody struct {
	Fields map[string]string
	Files  []FileField
}

// FileField is one uploaded file. Reader takes precedence over Data.
type FileField struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
	Reader      io.Reader
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// encode writes fields in key order, then files in slice order.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range slices.Sorted(maps.Keys(m.Fields)) {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", err
		}
	}
	for _, f := range m.Files {
		if err := writeFile(w, f); err != nil {
			return nil, "", fmt.Errorf("multipart file %q: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, f FileField) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.FieldName), quoteEscaper.Replace(f.FileName)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	src := f.Reader
	if src == nil {
		src = bytes.NewReader(f.Data)
	}
	_, err = io.Copy(part, src)
	return err
}
