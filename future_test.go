package tossup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFutureNoError(t *testing.T) {
	future := newFuture[int]()
	go func() {
		future.setResult(128, nil)
	}()
	r, err := future.Result()
	assert.NoError(t, err)
	assert.Equal(t, 128, r)
}

func TestFutureWithError(t *testing.T) {
	future := newFuture[*Summary]()
	e := errors.New("error")
	go func() {
		future.setResult(nil, e)
	}()
	r, err := future.Result()
	assert.ErrorIs(t, err, e)
	assert.Nil(t, r)
}

func TestFutureFirstResultWins(t *testing.T) {
	future := newFuture[int]()
	future.setResult(1, nil)
	future.setResult(2, errors.New("late"))
	for i := 0; i < 3; i++ {
		r, err := future.Result()
		assert.NoError(t, err)
		assert.Equal(t, 1, r)
	}
}
