package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cpuLoad := GetCPULoad()
	assert.GreaterOrEqual(t, cpuLoad, 0.0)
	assert.LessOrEqual(t, cpuLoad, 1.0)

	memLoad := GetMemLoad()
	assert.GreaterOrEqual(t, memLoad, 0.0)
	assert.LessOrEqual(t, memLoad, 1.0)
}

func TestRandN(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := RandN(10)
		assert.True(t, n >= 0 && n < 10)

		f := RandN(2.5)
		assert.True(t, f >= 0 && f < 2.5)

		d := RandN(800 * time.Millisecond)
		assert.True(t, d >= 0 && d < 800*time.Millisecond)
	}
	assert.Equal(t, 0, RandN(0))
	assert.Equal(t, int64(0), RandN(int64(-3)))
}
