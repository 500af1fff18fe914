package pool

import (
	"errors"
	"fmt"
	"time"

	"github.com/njtc406/emberpool/engine/pkg/def"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
)

// ReleaseResult 回收请求的结果,重复回收不是错误
type ReleaseResult int8

const (
	ReleaseNone       ReleaseResult = iota // 出错时返回
	ReleaseFreed                           // 已经放回freeSet
	ReleaseScheduled                       // 已经注册延时回收
	ReleaseSuppressed                      // 已经在等待回收或者已经空闲,请求被合并
	ReleaseStale                           // 实例已在池外销毁,条目被移除
)

func (r ReleaseResult) String() string {
	switch r {
	case ReleaseFreed:
		return "freed"
	case ReleaseScheduled:
		return "scheduled"
	case ReleaseSuppressed:
		return "suppressed"
	case ReleaseStale:
		return "stale"
	}
	return "none"
}

// Release 回收句柄,delay<=0时立即放回freeSet,否则delay之后由定时器回收
//
// 等待回收期间重复请求会被合并,不会注册第二个定时器
func (r *Registry) Release(h inf.IRecycle, delay time.Duration) (ReleaseResult, error) {
	p, err := r.ResolvePoolFor(h)
	if err != nil {
		return ReleaseNone, err
	}
	e := p.entryOf(h)
	if e == nil {
		delete(r.owners, h)
		return ReleaseNone, fmt.Errorf("%w: %T %p", def.ErrHandleNotOwned, h, h)
	}

	if !e.inUse() || e.pendingRelease() {
		p.stats.incDuplicate()
		r.logger.Debugf("pool [%s] release of entry %d suppressed, state %s", p.resourceType, e.id, e.state)
		r.observer.OnRelease(string(p.resourceType), ReleaseSuppressed.String())
		return ReleaseSuppressed, nil
	}

	if delay <= 0 {
		return r.freeNow(p, e)
	}

	if r.scheduler == nil {
		r.logger.Warnf("pool [%s] no timer scheduler, release entry %d now", p.resourceType, e.id)
		return r.freeNow(p, e)
	}

	e.state = entryPendingRelease
	gen, rt, id, seq := r.generation, p.resourceType, e.id, e.useSeq
	e.timerId = r.scheduler.AfterFunc(delay, "release:"+string(rt), func() {
		r.onReleaseTimer(gen, rt, id, seq)
	})
	r.observer.OnRelease(string(rt), ReleaseScheduled.String())
	return ReleaseScheduled, nil
}

func (r *Registry) freeNow(p *Pool, e *poolEntry) (ReleaseResult, error) {
	id := e.id
	if err := p.FreeHandle(e.handle); err != nil {
		if errors.Is(err, def.ErrStaleHandle) {
			r.logger.Warnf("pool [%s] entry %d destroyed out of band, evicted", p.resourceType, id)
			r.observer.OnRelease(string(p.resourceType), ReleaseStale.String())
			return ReleaseStale, nil
		}
		return ReleaseNone, err
	}
	r.observer.OnRelease(string(p.resourceType), ReleaseFreed.String())
	return ReleaseFreed, nil
}

// onReleaseTimer 定时器只记录标识,触发时重新查找,对不上的都是过期的定时器
func (r *Registry) onReleaseTimer(gen string, rt ResourceType, id uint64, seq uint64) {
	var e *poolEntry
	defer func() {
		if err := recover(); err != nil {
			r.logger.Errorf("pool [%s] delayed release of entry %d panic: %v", rt, id, err)
			if e != nil && e.pendingRelease() {
				// 回到使用中,调用方可以重新发起回收
				e.state = entryInUse
			}
		}
	}()

	if gen != r.generation {
		r.logger.Debugf("pool [%s] drop release timer of generation %s", rt, gen)
		return
	}
	p, ok := r.pools[rt]
	if !ok {
		return
	}
	e = p.entries[id]
	if e == nil || !e.pendingRelease() || e.useSeq != seq {
		r.logger.Debugf("pool [%s] drop stale release timer of entry %d", rt, id)
		return
	}

	e.timerId = 0
	if _, err := r.freeNow(p, e); err != nil {
		r.logger.Errorf("pool [%s] delayed release of entry %d failed: %v", rt, id, err)
		if e.pendingRelease() {
			e.state = entryInUse
		}
	}
}
