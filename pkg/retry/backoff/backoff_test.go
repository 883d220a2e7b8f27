package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstant(t *testing.T) {
	s := Constant(time.Second)
	for i := uint(1); i <= 10; i++ {
		assert.Equal(t, time.Second, s(i))
	}
}

func TestLinear(t *testing.T) {
	s := Linear(2 * time.Second)
	assert.Equal(t, 2*time.Second, s(1))
	assert.Equal(t, 4*time.Second, s(2))
	assert.Equal(t, 6*time.Second, s(3))
}

func TestExponential(t *testing.T) {
	s := Exponential(2*time.Second, 3)
	assert.Equal(t, 2*time.Second, s(1))
	assert.Equal(t, 6*time.Second, s(2))
	assert.Equal(t, 18*time.Second, s(3))
}

func TestBinaryExponential(t *testing.T) {
	s := BinaryExponential(time.Second)
	assert.Equal(t, time.Second, s(1))
	assert.Equal(t, 2*time.Second, s(2))
	assert.Equal(t, 4*time.Second, s(3))
	assert.Equal(t, 8*time.Second, s(4))
}
