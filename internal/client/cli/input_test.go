package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trimmed line", "  hello  \n", "hello"},
		{"partial line at EOF", "last", "last"},
		{"CRLF", "value\r\n", "value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), "Prompt", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Prompt\n> ", out.String())
		})
	}
}

func TestGetSimpleText_EmptyEOF(t *testing.T) {
	_, err := GetSimpleText(bufio.NewReader(strings.NewReader("")), "Prompt", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = GetPassword(&bytes.Buffer{})
	assert.EqualError(t, err, "no tty")
}

func TestGetMultiline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("first line\nsecond line\n\nnext command\n"))
	got, err := GetMultiline(r, "Describe", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", got)

	rest, _ := r.ReadString('\n')
	assert.Equal(t, "next command\n", rest)

	got, err = GetMultiline(bufio.NewReader(strings.NewReader("")), "Describe", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
