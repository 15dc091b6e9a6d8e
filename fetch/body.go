package fetch

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Body is the request payload. The variant set is sealed: NoBody, text,
// JSON, multipart form, or raw binary. A request holds exactly one variant
// at a time; setting a new one through the builder replaces the previous.
type Body interface {
	// encode returns the content type to send (empty to leave the header
	// alone) and the payload bytes. Form encoding can fail; the other
	// variants cannot.
	encode() (contentType string, payload []byte, err error)
}

// NoBody is the empty payload.
var NoBody Body = noBody{}

type noBody struct{}

func (noBody) encode() (string, []byte, error) {
	return "", nil, nil
}

type textBody struct {
	text string
}

func (b textBody) encode() (string, []byte, error) {
	return "", []byte(b.text), nil
}

// jsonBody holds pre-serialized JSON. Serialization happens in
// RequestBuilder.JSON so encode cannot fail here.
type jsonBody struct {
	data []byte
}

func (b jsonBody) encode() (string, []byte, error) {
	return "", b.data, nil
}

type binaryBody struct {
	data []byte
}

func (b binaryBody) encode() (string, []byte, error) {
	return "", b.data, nil
}

type formBody struct {
	form *Form
}

func (b formBody) encode() (string, []byte, error) {
	return b.form.encode()
}

// Form is an opaque multipart/form-data payload under construction.
// Add calls are chainable; construction problems surface as a
// Configuration error when the request is sent.
type Form struct {
	parts []formPart
}

type formPart struct {
	field       string
	filename    string
	contentType string
	data        []byte
	isFile      bool
}

// NewForm returns an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// Field appends a plain text field.
func (f *Form) Field(name, value string) *Form {
	f.parts = append(f.parts, formPart{field: name, data: []byte(value)})
	return f
}

// File appends a file part with an explicit filename and content type.
func (f *Form) File(field, filename, contentType string, data []byte) *Form {
	f.parts = append(f.parts, formPart{
		field:       field,
		filename:    filename,
		contentType: contentType,
		data:        data,
		isFile:      true,
	})
	return f
}

func (f *Form) encode() (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.field == "" {
			return "", nil, NewConfigurationError("multipart form field name is empty", nil)
		}
		var (
			pw  io.Writer
			err error
		)
		if p.isFile {
			if p.filename == "" {
				return "", nil, NewConfigurationError(fmt.Sprintf("multipart file part %q has no filename", p.field), nil)
			}
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
				escapeQuotes(p.field), escapeQuotes(p.filename)))
			if p.contentType != "" {
				header.Set("Content-Type", p.contentType)
			}
			pw, err = w.CreatePart(header)
		} else {
			pw, err = w.CreateFormField(p.field)
		}
		if err != nil {
			return "", nil, NewConfigurationError("failed to build multipart form", err)
		}
		if _, err := pw.Write(p.data); err != nil {
			return "", nil, NewConfigurationError("failed to write multipart part", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, NewConfigurationError("failed to finalize multipart form", err)
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
