package retry

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRetry_NoStrategies(t *testing.T) {
	var runs int
	attempts, err := Retry(func() error {
		runs++
		if runs < 5 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.EqualValues(t, 5, attempts)
	assert.Equal(t, 5, runs)
}

func TestRetry_Limit(t *testing.T) {
	errTransient := errors.New("transient")

	var runs int
	attempts, err := Retry(func() error {
		runs++
		return errTransient
	}, Limit(3))

	assert.Equal(t, errTransient, err)
	assert.EqualValues(t, 3, attempts)
	assert.Equal(t, 3, runs)
}

func TestRetrier(t *testing.T) {
	errTransient := errors.New("transient")
	r := NewRetrier(RetriableErrors(errTransient), Limit(2))

	var runs int
	attempts, err := r.Retry(func() error {
		runs++
		return errors.New("fatal")
	})

	assert.Error(t, err)
	assert.EqualValues(t, 1, attempts)
	assert.Equal(t, 1, runs)
}
