package tossup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarginStats(t *testing.T) {
	var s marginStats
	assert.Equal(t, 0.0, s.Avg())

	for _, v := range []int{-5, 3, 8} {
		s.Push(v)
	}
	assert.Equal(t, 3, s.N())
	assert.Equal(t, 2.0, s.Avg())
	assert.Equal(t, -5, s.Min())
	assert.Equal(t, 8, s.Max())

	var o marginStats
	o.Push(20)
	o.Push(-10)
	s.Merge(o)
	assert.Equal(t, 5, s.N())
	assert.Equal(t, 3.2, s.Avg())
	assert.Equal(t, -10, s.Min())
	assert.Equal(t, 20, s.Max())

	var empty marginStats
	empty.Merge(o)
	assert.Equal(t, -10, empty.Min())
	assert.Equal(t, 20, empty.Max())
}

func TestMarginStatsPositiveOnly(t *testing.T) {
	var s marginStats
	s.Push(86)
	s.Push(90)
	assert.Equal(t, 86, s.Min())
	assert.Equal(t, 90, s.Max())
}
