package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		err  *Error
		code string
	}{
		{ValidationError("bad token"), CodeValidation},
		{NotFoundError("Account"), CodeNotFound},
		{ConflictError("duplicate id"), CodeConflict},
		{DatabaseError(errors.New("timeout")), CodeDatabase},
		{UnknownError(errors.New("boom")), CodeUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.NotEmpty(t, tc.err.Message)
	}
}

func TestErrorStringIncludesDetail(t *testing.T) {
	err := ValidationError("Invalid account type")
	assert.Equal(t, "A validation error occurred: Invalid account type", err.Error())

	bare := &Error{Code: CodeUnknown, Message: "An unknown error occurred"}
	assert.Equal(t, "An unknown error occurred", bare.Error())
}

func TestAsErrorUnwrapsThroughWrapping(t *testing.T) {
	inner := NotFoundError("Account")
	wrapped := fmt.Errorf("handling request: %w", inner)

	e := AsError(wrapped)
	require.NotNil(t, e)
	assert.Equal(t, CodeNotFound, e.Code)
}

func TestAsErrorCoercesUnknown(t *testing.T) {
	e := AsError(errors.New("surprise"))
	assert.Equal(t, CodeUnknown, e.Code)
	assert.Equal(t, "surprise", e.Detail)
}
