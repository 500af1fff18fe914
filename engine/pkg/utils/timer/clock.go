// Package timer
// @Title  帧驱动定时器
// @Description  定时器不自己走时间,由外部(帧循环/ticker)调用Tick推进,所有回调都在调用Tick的协程里执行
// @Author  yr  2024/11/14
// @Update  yr  2025/8/2
package timer

import (
	"container/heap"
	"reflect"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/njtc406/emberpool/engine/pkg/def"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
)

// Timer 一次性定时器
type Timer struct {
	id       uint64
	seq      uint64
	name     string
	fireTime time.Time
	cb       func()
	index    int // 在堆中的位置,-1表示已经不在堆里
	logger   log.ILogger
}

func (t *Timer) GetTimerId() uint64 {
	return t.id
}

func (t *Timer) GetName() string {
	if t.name != "" {
		return t.name
	}
	if t.cb != nil {
		return runtime.FuncForPC(reflect.ValueOf(t.cb).Pointer()).Name()
	}
	return ""
}

func (t *Timer) GetFireTime() time.Time {
	return t.fireTime
}

func (t *Timer) Do() {
	defer func() {
		if r := recover(); r != nil {
			// 纪录日志,不能影响后面的定时器
			t.logger.Errorf("timer [%s] do err: %v\ntrace: %s", t.GetName(), r, debug.Stack())
		}
	}()

	if t.cb != nil {
		t.cb()
	}
}

var _ inf.ITimer = (*Timer)(nil)
var _ inf.ITimerScheduler = (*Clock)(nil)

// Clock goroutine not safe,只能在同一个协程里使用
type Clock struct {
	now    time.Time
	heap   timerHeap
	timers map[uint64]*Timer
	seed   uint64
	logger log.ILogger
}

type Option func(c *Clock)

func WithLogger(logger log.ILogger) Option {
	return func(c *Clock) {
		c.logger = logger
	}
}

func WithCapacity(capacity int) Option {
	return func(c *Clock) {
		if capacity > 0 {
			c.heap.timers = make([]*Timer, 0, capacity)
		}
	}
}

// NewClock start是时钟的初始时间
func NewClock(start time.Time, opts ...Option) *Clock {
	c := &Clock{
		now:    start,
		timers: make(map[uint64]*Timer),
		logger: log.SysLogger,
	}
	c.heap.timers = make([]*Timer, 0, def.DefaultTimerCapacity)
	for _, opt := range opts {
		opt(c)
	}
	heap.Init(&c.heap)
	return c
}

func (c *Clock) Now() time.Time {
	return c.now
}

// Len 还未触发的定时器数量
func (c *Clock) Len() int {
	return c.heap.Len()
}

// AfterFunc d<=0时在下一次Tick触发
func (c *Clock) AfterFunc(d time.Duration, name string, f func()) uint64 {
	if d < 0 {
		d = 0
	}
	c.seed++
	t := &Timer{
		id:       c.seed,
		seq:      c.seed,
		name:     name,
		fireTime: c.now.Add(d),
		cb:       f,
		logger:   c.logger,
	}
	heap.Push(&c.heap, t)
	c.timers[t.id] = t
	return t.id
}

func (c *Clock) Cancel(timerId uint64) bool {
	t, ok := c.timers[timerId]
	if !ok {
		return false
	}
	delete(c.timers, timerId)
	if t.index >= 0 {
		heap.Remove(&c.heap, t.index)
	}
	return true
}

// Tick 推进到now,执行所有到期的定时器,返回执行的数量
//
// 回调里新加的定时器如果已经到期,也会在这次Tick里执行
func (c *Clock) Tick(now time.Time) int {
	if now.After(c.now) {
		c.now = now
	}

	fired := 0
	for {
		fireTime, ok := c.heap.peekFireTime()
		if !ok || fireTime.After(c.now) {
			break
		}
		t := heap.Pop(&c.heap).(*Timer)
		delete(c.timers, t.id)
		t.Do()
		fired++
	}
	return fired
}

// Advance 时间往前推进d
func (c *Clock) Advance(d time.Duration) int {
	return c.Tick(c.now.Add(d))
}

// Clear 丢弃所有还未触发的定时器
func (c *Clock) Clear() {
	for _, t := range c.heap.timers {
		t.index = -1
	}
	c.heap.timers = c.heap.timers[:0]
	clear(c.timers)
}
