package iojson

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestDecode(t *testing.T) {
	got, err := Decode[[]item](strings.NewReader(`[{"id":1,"title":"The Matrix"},{"id":2,"title":"Alien"}]`))
	require.NoError(t, err)
	assert.Equal(t, []item{{1, "The Matrix"}, {2, "Alien"}}, got)
}

func TestDecode_rejects_unknown_fields(t *testing.T) {
	_, err := Decode[item](strings.NewReader(`{"id":1,"titel":"typo"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}

func TestFileReader_Read_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":7,"title":"Heat"}]`), 0o644))

	fr := &FileReader[[]item]{path: path}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []item{{7, "Heat"}}, got)
}

func TestFileReader_Read_missing_file(t *testing.T) {
	fr := &FileReader[[]item]{path: filepath.Join(t.TempDir(), "nope.json")}

	_, err := fr.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}

func TestFileReader_Read_piped_stdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdin.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":3,"title":"Ran"}`), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	fr := &FileReader[item]{stdin: f}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, item{3, "Ran"}, got)
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, item{1, "a"}))
	require.NoError(t, WriteLine(&buf, item{2, "b"}))

	assert.Equal(t, "{\"id\":1,\"title\":\"a\"}\n{\"id\":2,\"title\":\"b\"}\n", buf.String())
}

func TestWriteWith_marshal_failure(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestMarshalError(t *testing.T) {
	var e Error
	require.NoError(t, json.Unmarshal([]byte(MarshalError("boom", map[string]any{"id": 4})), &e))
	assert.Equal(t, "boom", e.Message)
	assert.InDelta(t, 4, e.Data["id"], 0)
}
