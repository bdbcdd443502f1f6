package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:  http.StatusBadRequest,
		KindAuth:        http.StatusUnauthorized,
		KindForbidden:   http.StatusForbidden,
		KindNotFound:    http.StatusNotFound,
		KindConflict:    http.StatusConflict,
		KindUpload:      http.StatusInternalServerError,
		KindPersistence: http.StatusInternalServerError,
		KindUnknown:     http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestWithCauseKeepsSentinel(t *testing.T) {
	sentinel := NotFound("Video not found")
	cause := errors.New("record not found")

	err := fmt.Errorf("load: %w", sentinel.WithCause(cause))

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Contains(t, err.Error(), "record not found")
}

func TestPlainErrorIsUnknown(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))

	_, ok := As(err)
	assert.False(t, ok)
}

func TestUploadWrapsCause(t *testing.T) {
	cause := errors.New("bucket missing")
	err := Upload("Failed to upload avatar", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to upload avatar: bucket missing", err.Error())
	assert.Equal(t, KindUpload, KindOf(err))
}
