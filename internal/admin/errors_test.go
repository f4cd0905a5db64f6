package admin

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	require.True(t, IsNotFound(&StatusError{Status: http.StatusNotFound}))
	require.False(t, IsNotFound(&StatusError{Status: http.StatusInternalServerError}))
	require.False(t, IsNotFound(errors.New("not a status error")))
	require.False(t, IsNotFound(nil))

	// wrapped errors still unwrap to the status
	wrapped := fmt.Errorf("fetching service: %w", &StatusError{Status: http.StatusNotFound})
	require.True(t, IsNotFound(wrapped))
}

func TestRequestErrorMessage(t *testing.T) {
	t.Parallel()

	err := &RequestError{
		Status:   http.StatusConflict,
		Expected: http.StatusCreated,
		Path:     "http://localhost:8001/services",
		Body:     `{"message": "name taken"}`,
		Payload:  map[string]interface{}{"name": "web"},
	}

	message := err.Error()
	assert.Contains(t, message, "409")
	assert.Contains(t, message, "201")
	assert.Contains(t, message, "http://localhost:8001/services")
	assert.Contains(t, message, "name taken")
}

func TestFlattenConfig(t *testing.T) {
	t.Parallel()

	flattened := FlattenConfig(map[string]interface{}{
		"minute": 5,
		"policy": "local",
	})
	assert.Equal(t, map[string]interface{}{
		"config.minute": 5,
		"config.policy": "local",
	}, flattened)

	assert.Empty(t, FlattenConfig(nil))
}
