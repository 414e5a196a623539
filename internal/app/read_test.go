package app

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Status string `json:"status"`
	}

	p, err := ReadJSON[payload]([]byte(`{"status":"ok"}`))
	require.NoError(t, err)
	assert.Equal(t, "ok", p.Status)

	_, err = ReadJSON[payload]([]byte(`null`))
	assert.ErrorIs(t, err, ErrEmptyJSON)

	_, err = ReadJSON[payload]([]byte(`{`))
	assert.Error(t, err)
}

func TestRead_Limit(t *testing.T) {
	content, err := Read(io.NopCloser(strings.NewReader(strings.Repeat("a", maxBodyBytes+10))))
	require.NoError(t, err)
	assert.Len(t, content, maxBodyBytes)
}
