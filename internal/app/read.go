package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const maxBodyBytes = 1 << 20

var ErrEmptyJSON = errors.New("empty JSON document")

// Read drains and closes reader, stopping after maxBodyBytes.
func Read(reader io.ReadCloser) ([]byte, error) {
	defer func() {
		if err := reader.Close(); err != nil {
			slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		}
	}()

	return io.ReadAll(io.LimitReader(reader, maxBodyBytes))
}

// ReadJSON decodes content into a fresh T. A literal null decodes to
// ErrEmptyJSON rather than a nil value.
func ReadJSON[T any](content []byte) (*T, error) {
	var t *T
	err := json.Unmarshal(content, &t)

	if err != nil {
		return nil, err
	} else if t == nil {
		return nil, ErrEmptyJSON
	}

	return t, nil
}
