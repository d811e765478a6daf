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

type doc struct {
	Items []string `json:"items"`
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader[doc]{Stdin: strings.NewReader(`{"items":["a","b"]}`)}

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Items)
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":["from file"]}`), 0o644))

	fr := &FileReader[doc]{path: path, Stdin: strings.NewReader(`{"items":["ignored"]}`)}

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"from file"}, got.Items)
}

func TestFileReader_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", `{"items":[],"extra":1}`},
		{"trailing document", `{"items":[]} {"items":[]}`},
		{"not json", `buy milk`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &FileReader[doc]{Stdin: strings.NewReader(tt.input)}
			_, err := fr.Read()
			assert.ErrorContains(t, err, "decode JSON")
		})
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, "item 1: empty", map[string]any{"written": false}))

	var got Error
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "item 1: empty", got.Message)
	assert.Equal(t, false, got.Data["written"])
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, map[string]int{"open": 2}))
	require.NoError(t, WriteLine(&buf, map[string]int{"open": 3}))

	assert.Equal(t, "{\"open\":2}\n{\"open\":3}\n", buf.String())
}
