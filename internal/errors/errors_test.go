package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("invalid draft",
		ValidationDetail{Field: "city", Message: "City is required"},
		ValidationDetail{Field: "phone", Message: "Phone number is required"},
	)

	assert.Equal(t, "invalid draft", err.Error())
	assert.Len(t, err.Details, 2)

	ve, ok := IsValidationError(error(err))
	assert.True(t, ok)
	assert.Equal(t, "city", ve.Details[0].Field)

	_, ok = IsValidationError(errors.New("plain"))
	assert.False(t, ok)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order", "ORD-ZZZZZZZZZ")
	assert.Equal(t, `order "ORD-ZZZZZZZZZ" not found`, err.Error())

	nf, ok := IsNotFoundError(error(err))
	assert.True(t, ok)
	assert.Equal(t, "order", nf.Resource)
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("backend unreachable", cause)

	assert.Equal(t, "backend unreachable: connection refused", err.Error())
	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", err), cause))
}
