package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("wrapped domain error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", NewNotFound("No visitor ID found for user_id: u2"))
		de := ToDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, CodeNotFound, de.Code)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
		assert.Equal(t, "Not Found", de.Title())
	})

	t.Run("fiber error keeps its status", func(t *testing.T) {
		de := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
		assert.Equal(t, CodeNotFound, de.Code)
		assert.Equal(t, "Cannot GET /nope", de.Message)

		de = ToDomainError(fiber.ErrUnprocessableEntity)
		assert.Equal(t, CodeBadRequest, de.Code)
		assert.Equal(t, http.StatusUnprocessableEntity, de.HTTPStatus)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		cause := errors.New("boom")
		de := ToDomainError(cause)
		assert.Equal(t, CodeInternal, de.Code)
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
		assert.Equal(t, "Internal Server Error", de.Title())
		assert.ErrorIs(t, de, cause)
	})
}

func TestMissingFieldIsServerError(t *testing.T) {
	de := ToDomainError(NewMissingField("Visitor ID field missing in database record"))
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, CodeMissingField, de.Code)
}
