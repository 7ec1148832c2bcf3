package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsCodeForIs(t *testing.T) {
	err := Clone(ErrUnauthorized, "session expired")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "session expired", err.Error())
	assert.Equal(t, "unauthorized", ErrUnauthorized.Message)
}

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}

func TestHasCodeWalksChain(t *testing.T) {
	inner := Clone(ErrUnauthorized, "")
	outer := Wrap(fmt.Errorf("list events: %w", inner), ErrUpstream.Code, ErrUpstream.Status, "load failed")

	assert.True(t, HasCode(outer, ErrUnauthorized.Code))
	assert.True(t, HasCode(outer, ErrUpstream.Code))
	assert.False(t, HasCode(outer, ErrValidation.Code))
	assert.False(t, HasCode(fmt.Errorf("plain"), ErrInternal.Code))
}
