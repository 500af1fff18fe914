// Package pool
// @Title  对象池
// @Description  一个资源类型对应一个Pool,管理freeSet/usedSet和实例的生命周期
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package pool

import (
	"fmt"

	"github.com/eapache/queue"
	"github.com/njtc406/emberpool/engine/pkg/def"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
)

// Pool goroutine not safe,所有调用必须在同一个协程里
//
// 池子只会变大,预加载数量不是上限;实例只会被隐藏,直到池子销毁才会Destroy
type Pool struct {
	resourceType  ResourceType
	preloadAmount int
	factory       inf.IFactory

	entries  map[uint64]*poolEntry     // 所有实例
	byHandle map[inf.IRecycle]uint64   // 句柄 -> 条目id
	freeSet  *queue.Queue              // 可用条目id(先进先出)
	usedSet  map[uint64]struct{}       // 使用中条目id
	seed     uint64                    // 条目id生成
	onEvict  func(handle inf.IRecycle) // 实例被移除时通知注册表

	stats    statsRecorder
	logger   log.ILogger
	observer Observer
}

// NewPool 创建对象池并预加载preloadAmount个实例,预加载失败时已经创建的实例会被销毁
func NewPool(rt ResourceType, preloadAmount int, factory inf.IFactory, opts ...Option) (*Pool, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: resource type [%s]", def.ErrNilFactory, rt)
	}
	o := newOptions(opts...)
	if preloadAmount < 0 {
		o.logger.Warnf("pool [%s] preload amount %d < 0, use 0", rt, preloadAmount)
		preloadAmount = 0
	}

	p := &Pool{
		resourceType:  rt,
		preloadAmount: preloadAmount,
		factory:       factory,
		entries:       make(map[uint64]*poolEntry, preloadAmount),
		byHandle:      make(map[inf.IRecycle]uint64, preloadAmount),
		freeSet:       queue.New(),
		usedSet:       make(map[uint64]struct{}, preloadAmount),
		logger:        o.logger,
		observer:      o.observer,
	}

	for i := 0; i < preloadAmount; i++ {
		e, err := p.newEntry()
		if err != nil {
			p.teardown()
			return nil, err
		}
		hide(e.handle)
		p.freeSet.Add(e.id)
	}

	p.observer.OnSize(string(rt), 0, p.freeSet.Length())
	return p, nil
}

func (p *Pool) Type() ResourceType {
	return p.resourceType
}

func (p *Pool) PreloadAmount() int {
	return p.preloadAmount
}

func (p *Pool) ObjectsInUse() int {
	return len(p.usedSet)
}

func (p *Pool) ObjectsFree() int {
	return p.freeSet.Length()
}

func (p *Pool) ObjectsTotal() int {
	return len(p.entries)
}

// Owns 句柄是否属于这个池子(不管是否在使用中)
func (p *Pool) Owns(h inf.IRecycle) bool {
	if !isComparable(h) {
		return false
	}
	_, ok := p.byHandle[h]
	return ok
}

// newEntry 调用工厂创建一个新条目,失败时池子不会有任何变化
func (p *Pool) newEntry() (*poolEntry, error) {
	h, err := p.factory.Create(string(p.resourceType))
	if err != nil {
		return nil, fmt.Errorf("%w: resource type [%s]: %w", def.ErrFactoryFailed, p.resourceType, err)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: resource type [%s] factory returned %w", def.ErrFactoryFailed, p.resourceType, def.ErrNilHandle)
	}
	if !isComparable(h) {
		return nil, fmt.Errorf("%w: resource type [%s] instance %T is not comparable", def.ErrFactoryFailed, p.resourceType, h)
	}
	if _, ok := p.byHandle[h]; ok {
		return nil, fmt.Errorf("%w: resource type [%s] factory returned an instance already owned by the pool", def.ErrFactoryFailed, p.resourceType)
	}

	p.seed++
	e := &poolEntry{
		id:     p.seed,
		handle: h,
		state:  entryFree,
	}
	h.SetPoolEntry(inf.PoolEntryRef{ResourceType: string(p.resourceType), EntryId: e.id})
	p.entries[e.id] = e
	p.byHandle[h] = e.id
	p.stats.incTotalAlloc()
	return e, nil
}

// FetchFree 取出一个可用实例,没有可用实例时新建一个(池子永久变大)
//
// 取出的顺序没有保证,只有工厂失败时才会返回错误
func (p *Pool) FetchFree() (inf.IRecycle, error) {
	for p.freeSet.Length() > 0 {
		id := p.freeSet.Remove().(uint64)
		e := p.entries[id]
		if isDestroyed(e.handle) {
			// 空闲时就被外部销毁了,丢掉继续找下一个
			p.logger.Warnf("pool [%s] drop free instance %d destroyed out of band", p.resourceType, e.id)
			p.evict(e)
			continue
		}
		p.markUsed(e)
		p.stats.incHit()
		p.observer.OnFetch(string(p.resourceType), false)
		return e.handle, nil
	}

	e, err := p.newEntry()
	if err != nil {
		return nil, err
	}
	p.markUsed(e)
	p.stats.incMiss()
	p.logger.Debugf("pool [%s] grow to %d", p.resourceType, len(p.entries))
	p.observer.OnFetch(string(p.resourceType), true)
	return e.handle, nil
}

// FreeHandle 把实例放回freeSet
//
// 句柄不属于这个池子返回ErrUnknownHandle;实例已经在外部被销毁时条目会被永久移除并返回ErrStaleHandle;
// 条目本来就是空闲的返回ErrHandleNotInUse,池子不会有任何变化
func (p *Pool) FreeHandle(h inf.IRecycle) error {
	if h == nil {
		return fmt.Errorf("%w: resource type [%s]", def.ErrNilHandle, p.resourceType)
	}
	e := p.entryOf(h)
	if e == nil {
		return fmt.Errorf("%w: resource type [%s] handle %p", def.ErrUnknownHandle, p.resourceType, h)
	}
	if !e.inUse() {
		return fmt.Errorf("%w: resource type [%s] entry %d", def.ErrHandleNotInUse, p.resourceType, e.id)
	}
	if isDestroyed(h) {
		p.evict(e)
		return fmt.Errorf("%w: resource type [%s] entry %d", def.ErrStaleHandle, p.resourceType, e.id)
	}

	p.markFree(e)
	return nil
}

func (p *Pool) entryOf(h inf.IRecycle) *poolEntry {
	if !isComparable(h) {
		return nil
	}
	id, ok := p.byHandle[h]
	if !ok {
		return nil
	}
	return p.entries[id]
}

func (p *Pool) markUsed(e *poolEntry) {
	e.state = entryInUse
	e.useSeq++
	p.usedSet[e.id] = struct{}{}
	activate(e.handle)
	p.stats.observeUsed(len(p.usedSet))
	p.observer.OnSize(string(p.resourceType), len(p.usedSet), p.freeSet.Length())
}

func (p *Pool) markFree(e *poolEntry) {
	// 先清理实例,Reset出错时条目还留在usedSet里
	deactivate(e.handle)
	delete(p.usedSet, e.id)
	e.state = entryFree
	e.timerId = 0
	p.freeSet.Add(e.id)
	p.stats.incRelease()
	p.observer.OnSize(string(p.resourceType), len(p.usedSet), p.freeSet.Length())
}

// evict 永久移除条目,调用时条目不能在freeSet里
func (p *Pool) evict(e *poolEntry) {
	delete(p.usedSet, e.id)
	delete(p.entries, e.id)
	delete(p.byHandle, e.handle)
	p.stats.incStale()
	p.observer.OnEvict(string(p.resourceType))
	p.observer.OnSize(string(p.resourceType), len(p.usedSet), p.freeSet.Length())
	if p.onEvict != nil {
		p.onEvict(e.handle)
	}
	e.handle = nil
	e.timerId = 0
}

// usedHandles 所有使用中的句柄(包含等待延时回收的)
func (p *Pool) usedHandles() []inf.IRecycle {
	handles := make([]inf.IRecycle, 0, len(p.usedSet))
	for id := range p.usedSet {
		handles = append(handles, p.entries[id].handle)
	}
	return handles
}

// pendingTimers 清掉所有条目上的延时回收标记,返回对应的定时器id
func (p *Pool) pendingTimers() []uint64 {
	var ids []uint64
	for id := range p.usedSet {
		e := p.entries[id]
		if e.timerId != 0 {
			ids = append(ids, e.timerId)
			e.timerId = 0
		}
		if e.pendingRelease() {
			e.state = entryInUse
		}
	}
	return ids
}

// teardown 销毁所有实例,池子之后不能再使用
func (p *Pool) teardown() {
	for _, e := range p.entries {
		if d, ok := e.handle.(inf.IDestroy); ok {
			d.Destroy()
		}
		e.handle = nil
	}
	clear(p.entries)
	clear(p.byHandle)
	clear(p.usedSet)
	p.freeSet = queue.New()
}

func (p *Pool) Stats() Stats {
	pending := 0
	for id := range p.usedSet {
		if p.entries[id].pendingRelease() {
			pending++
		}
	}
	return Stats{
		Name:            string(p.resourceType),
		PreloadAmount:   p.preloadAmount,
		InUse:           len(p.usedSet),
		Free:            p.freeSet.Length(),
		Total:           len(p.entries),
		Pending:         pending,
		HitCount:        p.stats.hit,
		MissCount:       p.stats.miss,
		TotalAlloc:      p.stats.totalAlloc,
		ReleaseCount:    p.stats.release,
		DuplicateCount:  p.stats.duplicate,
		StaleCount:      p.stats.stale,
		MaxObservedUsed: p.stats.maxUsed,
	}
}

// checkPartition 检查freeSet/usedSet划分,测试用
func (p *Pool) checkPartition() error {
	free := make(map[uint64]struct{}, p.freeSet.Length())
	for i := 0; i < p.freeSet.Length(); i++ {
		id := p.freeSet.Get(i).(uint64)
		if _, dup := free[id]; dup {
			return fmt.Errorf("entry %d is in freeSet twice", id)
		}
		free[id] = struct{}{}
		if _, used := p.usedSet[id]; used {
			return fmt.Errorf("entry %d is in both freeSet and usedSet", id)
		}
		e, ok := p.entries[id]
		if !ok {
			return fmt.Errorf("free entry %d does not exist", id)
		}
		if e.inUse() {
			return fmt.Errorf("free entry %d is in state %s", id, e.state)
		}
	}
	for id := range p.usedSet {
		e, ok := p.entries[id]
		if !ok {
			return fmt.Errorf("used entry %d does not exist", id)
		}
		if !e.inUse() {
			return fmt.Errorf("used entry %d is in state %s", id, e.state)
		}
	}
	if len(free)+len(p.usedSet) != len(p.entries) {
		return fmt.Errorf("free %d + used %d != total %d", len(free), len(p.usedSet), len(p.entries))
	}
	return nil
}
