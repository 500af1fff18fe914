package runtime

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/njtc406/emberpool/engine/pkg/def"
	"github.com/njtc406/emberpool/engine/pkg/utils/util"
)

var (
	cpuLoad = util.GetCPULoad
	memLoad = util.GetMemLoad
)

// loop 主循环,对象池和时钟只在这个协程里访问
type loop struct {
	mailbox chan func()
	closeCh chan struct{} // 通知退出
	doneCh  chan struct{} // 已经退出
	running atomic.Bool
	closed  atomic.Bool
	wg      sync.WaitGroup
}

func (l *loop) init(size int) {
	l.mailbox = make(chan func(), size)
	l.closeCh = make(chan struct{})
	l.doneCh = make(chan struct{})
}

func (r *Runtime) run() {
	defer r.loop.wg.Done()

	ticker := time.NewTicker(r.conf.TickInterval)
	defer ticker.Stop()

	defer func() {
		// 退出时把已经投递的任务执行完
		r.drain()
		r.safeExec(r.Reset)
		r.clock.Clear()
		r.loop.running.Store(false)
		close(r.loop.doneCh)
	}()

	for {
		select {
		case <-r.loop.closeCh:
			return
		case now := <-ticker.C:
			r.safeExec(func() { r.Tick(now) })
		case f := <-r.loop.mailbox:
			r.safeExec(f)
			r.collector.OnLoopTask(1)
		}
	}
}

func (r *Runtime) drain() {
	for {
		select {
		case f := <-r.loop.mailbox:
			r.safeExec(f)
			r.collector.OnLoopTask(1)
		default:
			return
		}
	}
}

func (r *Runtime) safeExec(f func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Errorf("pool runtime exec error: %v\ntrace:%s", rec, debug.Stack())
		}
	}()
	f()
}

// Post 投递到主循环执行,不等待结果
func (r *Runtime) Post(f func()) error {
	if r.loop.closed.Load() {
		return def.ErrRuntimeClosed
	}
	if !r.loop.running.Load() {
		return def.ErrRuntimeNotRunning
	}
	select {
	case r.loop.mailbox <- f:
		return nil
	default:
		return def.ErrMailboxIsFull
	}
}

// Call 投递到主循环执行并等待执行完成,不能在主循环里调用
func (r *Runtime) Call(f func()) error {
	done := make(chan error, 1)
	err := r.Post(func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("pool runtime call panic: %v", rec)
			}
		}()
		f()
		done <- nil
	})
	if err != nil {
		return err
	}

	select {
	case err = <-done:
		return err
	case <-r.loop.doneCh:
		select {
		case err = <-done:
			return err
		default:
			return def.ErrRuntimeClosed
		}
	}
}
