package timer

import (
	"testing"
	"time"

	"github.com/njtc406/emberpool/engine/pkg/utils/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func newTestClock() *Clock {
	return NewClock(start, WithLogger(log.NewDiscard()), WithCapacity(8))
}

func TestClock_FireOrder(t *testing.T) {
	c := newTestClock()
	var got []string
	c.AfterFunc(300*time.Millisecond, "c", func() { got = append(got, "c") })
	c.AfterFunc(100*time.Millisecond, "a", func() { got = append(got, "a") })
	c.AfterFunc(200*time.Millisecond, "b1", func() { got = append(got, "b1") })
	c.AfterFunc(200*time.Millisecond, "b2", func() { got = append(got, "b2") })
	require.Equal(t, 4, c.Len())

	assert.Equal(t, 0, c.Advance(99*time.Millisecond))
	assert.Equal(t, 3, c.Advance(200*time.Millisecond))
	assert.Equal(t, []string{"a", "b1", "b2"}, got)
	assert.Equal(t, 1, c.Len())
	// 到期时间等于当前时间也会触发
	assert.Equal(t, 1, c.Advance(time.Millisecond))
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, got)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, start.Add(300*time.Millisecond), c.Now())
}

func TestClock_Cancel(t *testing.T) {
	c := newTestClock()
	fired := false
	id := c.AfterFunc(time.Second, "", func() { fired = true })
	assert.NotZero(t, id)

	assert.True(t, c.Cancel(id))
	assert.False(t, c.Cancel(id))
	assert.False(t, c.Cancel(12345))
	c.Advance(time.Minute)
	assert.False(t, fired)
}

func TestClock_CancelInsideCallback(t *testing.T) {
	c := newTestClock()
	fired := 0
	var second uint64
	c.AfterFunc(time.Second, "first", func() {
		fired++
		assert.True(t, c.Cancel(second))
	})
	second = c.AfterFunc(time.Second, "second", func() { fired++ })

	assert.Equal(t, 1, c.Advance(time.Second))
	assert.Equal(t, 1, fired)
}

func TestClock_AddDueTimerInsideCallback(t *testing.T) {
	c := newTestClock()
	var got []int
	c.AfterFunc(time.Second, "", func() {
		got = append(got, 1)
		c.AfterFunc(0, "", func() { got = append(got, 2) })
		c.AfterFunc(time.Second, "", func() { got = append(got, 3) })
	})

	assert.Equal(t, 2, c.Advance(time.Second))
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 1, c.Len())
}

func TestClock_PanicDoesNotBlock(t *testing.T) {
	c := newTestClock()
	fired := false
	c.AfterFunc(time.Millisecond, "boom", func() { panic("boom") })
	c.AfterFunc(time.Millisecond, "ok", func() { fired = true })

	assert.NotPanics(t, func() { c.Advance(time.Millisecond) })
	assert.True(t, fired)
}

func TestClock_TickNeverGoesBack(t *testing.T) {
	c := newTestClock()
	c.Tick(start.Add(time.Second))
	c.Tick(start)
	assert.Equal(t, start.Add(time.Second), c.Now())

	fired := false
	c.AfterFunc(-time.Second, "", func() { fired = true })
	c.Tick(start)
	assert.True(t, fired)
}

func TestClock_Clear(t *testing.T) {
	c := newTestClock()
	id := c.AfterFunc(time.Second, "", func() { t.Fatal("should not fire") })
	c.AfterFunc(2*time.Second, "", func() { t.Fatal("should not fire") })
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Cancel(id))
	c.Advance(time.Minute)
}

func namedCallback() {}

func TestTimer_GetName(t *testing.T) {
	tm := &Timer{name: "release"}
	assert.Equal(t, "release", tm.GetName())
	tm = &Timer{cb: namedCallback}
	assert.Contains(t, tm.GetName(), "namedCallback")
}

func BenchmarkClock_AfterFuncTick(b *testing.B) {
	c := NewClock(start, WithLogger(log.NewDiscard()))
	f := func() {}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.AfterFunc(time.Millisecond, "", f)
		c.Advance(time.Millisecond)
	}
}
