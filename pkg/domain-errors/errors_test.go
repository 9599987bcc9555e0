package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "applicant not found")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeInternal))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to load applicant")

	require.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeInternal))
	assert.Equal(t, "failed to load applicant: connection reset", err.Error())
	assert.Nil(t, Wrap(nil, CodeInternal, "nothing"))
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(CodeForbidden, "forbidden"))
	assert.True(t, HasCode(err, CodeForbidden))
}

func TestErrorsIsComparesCodeAndMessage(t *testing.T) {
	err := New(CodeUnauthorized, "token has expired")
	require.ErrorIs(t, err, New(CodeUnauthorized, "token has expired"))
	assert.NotErrorIs(t, err, New(CodeUnauthorized, "invalid token"))
}
