package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ValidationErrorf("name is empty"), http.StatusBadRequest},
		{"not found", NotFoundErrorf("folder %s", "x"), http.StatusNotFound},
		{"conflict", ConflictErrorf("duplicate name"), http.StatusConflict},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil wrapped", errors.New(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestSentinelWrappingPreservesDetail(t *testing.T) {
	err := NotFoundErrorf("folder %q missing", "photos")

	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), `folder "photos" missing`)
}
