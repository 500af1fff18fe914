// Package asynclib
// Mode ServiceName: 异步执行
// Mode Desc: 使用协程池中的协程执行任务,防止出现瞬间创建大量协程,出现性能问题
package asynclib

import (
	"errors"
	"runtime"
	"runtime/debug"

	"github.com/njtc406/emberpool/engine/pkg/utils/log"
	"github.com/panjf2000/ants/v2"
)

var ErrPoolNotInit = errors.New("async pool not init")

// Executor 协程池,主循环把耗时的工作(写日志、采样)丢到这里执行
type Executor struct {
	antsPool *ants.Pool
}

// NewExecutor 实际大小是cpu数*size,size<=0时返回的Executor不可用,Go会返回ErrPoolNotInit
func NewExecutor(size int) *Executor {
	e := &Executor{}
	if size > 0 {
		e.antsPool = NewAntsPool(runtime.NumCPU()*size, ants.WithPreAlloc(true), ants.WithPanicHandler(onPanic))
	}
	return e
}

// NewAntsPool 创建协程池
// size表示池子的大小
func NewAntsPool(size int, options ...ants.Option) *ants.Pool {
	p, err := ants.NewPool(size, options...)
	if err != nil {
		panic(err)
	}
	return p
}

func onPanic(r interface{}) {
	log.SysLogger.Errorf("groutine exec func failed, err:%v\ntrace:%s", r, debug.Stack())
}

func (e *Executor) Go(f func()) error {
	if e == nil || e.antsPool == nil {
		return ErrPoolNotInit
	}
	return e.antsPool.Submit(f)
}

// Running 正在执行的任务数
func (e *Executor) Running() int {
	if e == nil || e.antsPool == nil {
		return 0
	}
	return e.antsPool.Running()
}

func (e *Executor) Release() {
	if e != nil && e.antsPool != nil {
		e.antsPool.Release()
		e.antsPool = nil
	}
}
