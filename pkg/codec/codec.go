// Package codec decodes request bodies according to their Content-Type. It
// is a thin deserialization utility on the edge of the framework: routing and
// dispatch never depend on it.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
)

// File is one uploaded part of a multipart form, held in memory as a
// name/content pair.
type File struct {
	Name     string
	Filename string
	Content  []byte
}

// Form is the decoded representation of a form body: flat string fields plus
// any uploaded files.
type Form struct {
	Values map[string]string
	Files  []File
}

// Decode interprets body according to contentType. JSON bodies decode into a
// structured value, urlencoded and multipart bodies into a Form. An absent or
// unrecognized content type yields no parsed body and no error.
func Decode(contentType string, body []byte) (any, error) {
	if contentType == "" {
		return nil, nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, err
	}

	switch mediaType {
	case "application/json":
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "application/x-www-form-urlencoded":
		return DecodeForm(string(body))
	case "multipart/form-data":
		return DecodeMultipart(body, params["boundary"])
	}
	return nil, nil
}

// DecodeJSON unmarshals a JSON body into v.
func DecodeJSON(body []byte, v any) error {
	return json.Unmarshal(body, v)
}

// DecodeForm parses an application/x-www-form-urlencoded body. Repeated keys
// keep their first value.
func DecodeForm(body string) (*Form, error) {
	values, err := url.ParseQuery(body)
	if err != nil {
		return nil, err
	}

	f := &Form{Values: make(map[string]string, len(values))}
	for k, vs := range values {
		if len(vs) > 0 {
			f.Values[k] = vs[0]
		} else {
			f.Values[k] = ""
		}
	}
	return f, nil
}

// DecodeMultipart parses a multipart/form-data body using the boundary from
// the Content-Type parameters. Parts with a filename become Files; the rest
// become string fields.
func DecodeMultipart(body []byte, boundary string) (*Form, error) {
	if boundary == "" {
		return nil, errors.New("multipart body without boundary")
	}

	r := multipart.NewReader(bytes.NewReader(body), boundary)
	f := &Form{Values: make(map[string]string)}

	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		content, err := io.ReadAll(part)
		if err != nil {
			return nil, err
		}

		if part.FileName() != "" {
			f.Files = append(f.Files, File{
				Name:     part.FormName(),
				Filename: part.FileName(),
				Content:  content,
			})
		} else {
			f.Values[part.FormName()] = string(content)
		}
	}
	return f, nil
}
