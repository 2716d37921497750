package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorMatching(t *testing.T) {
	cause := errors.New("open corpus.csv: no such file")
	err := fmt.Errorf("startup: %w", ErrCorpusLoad.Wrap(cause))

	assert.True(t, errors.Is(err, ErrCorpusLoad))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNoMatch))

	var ce *CustomError
	if assert.True(t, errors.As(err, &ce)) {
		assert.Equal(t, ErrCodeCorpusLoad, ce.Code)
	}
	assert.Contains(t, err.Error(), "no such file")
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("bind: %w", NewValidationError("cuisine is required"))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(ErrNoMatch))
}
