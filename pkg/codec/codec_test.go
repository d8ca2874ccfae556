package codec

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	v, err := Decode("application/json", []byte(`{"name":"ada","n":2}`))
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada", m["name"])
	assert.Equal(t, float64(2), m["n"])
}

func TestDecodeJSONWithCharset(t *testing.T) {
	v, err := Decode("application/json; charset=utf-8", []byte(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, v)
}

func TestDecodeJSONMalformed(t *testing.T) {
	_, err := Decode("application/json", []byte(`{`))
	assert.Error(t, err)
}

func TestDecodeJSONInto(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeJSON([]byte(`{"name":"ada"}`), &out))
	assert.Equal(t, "ada", out.Name)
}

func TestDecodeForm(t *testing.T) {
	v, err := Decode("application/x-www-form-urlencoded", []byte("name=hello+world&key=123"))
	require.NoError(t, err)

	f, ok := v.(*Form)
	require.True(t, ok)
	assert.Equal(t, "hello world", f.Values["name"])
	assert.Equal(t, "123", f.Values["key"])
	assert.Empty(t, f.Files)
}

func TestDecodeMultipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "report"))
	fw, err := w.CreateFormFile("upload", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("line one"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	v, err := Decode(w.FormDataContentType(), buf.Bytes())
	require.NoError(t, err)

	f, ok := v.(*Form)
	require.True(t, ok)
	assert.Equal(t, "report", f.Values["title"])
	require.Len(t, f.Files, 1)
	assert.Equal(t, "upload", f.Files[0].Name)
	assert.Equal(t, "notes.txt", f.Files[0].Filename)
	assert.Equal(t, "line one", string(f.Files[0].Content))
}

func TestDecodeMultipartWithoutBoundary(t *testing.T) {
	_, err := Decode("multipart/form-data", nil)
	assert.Error(t, err)
}

func TestDecodeUnknownContentType(t *testing.T) {
	v, err := Decode("application/octet-stream", []byte{0x1})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecodeAbsentContentType(t *testing.T) {
	v, err := Decode("", []byte("whatever"))
	require.NoError(t, err)
	assert.Nil(t, v)
}
