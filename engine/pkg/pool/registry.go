// Package pool
// @Title  对象池注册表
// @Description  资源类型 -> 对象池,负责所有对象池的创建、查找和重建
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package pool

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/njtc406/emberpool/engine/pkg/catalog"
	"github.com/njtc406/emberpool/engine/pkg/def"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
)

// Registry goroutine not safe,和定时器在同一个协程里使用
//
// 重新初始化相当于一个全局屏障,期间不能有正在进行的取出/回收
type Registry struct {
	scheduler inf.ITimerScheduler
	opts      []Option
	logger    log.ILogger
	observer  Observer

	pools      map[ResourceType]*Pool
	types      []ResourceType         // 初始化顺序
	owners     map[inf.IRecycle]*Pool // 取出过的句柄 -> 所属池子
	generation string                 // 每次初始化重新生成,用来识别上一代的定时器
}

func NewRegistry(scheduler inf.ITimerScheduler, opts ...Option) *Registry {
	o := newOptions(opts...)
	return &Registry{
		scheduler: scheduler,
		opts:      opts,
		logger:    o.logger,
		observer:  o.observer,
		pools:     make(map[ResourceType]*Pool),
		owners:    make(map[inf.IRecycle]*Pool),
	}
}

// Initialize 按定义列表创建所有对象池
//
// 已经初始化过时会先Reset;任何一个池子创建失败,已经创建的池子都会被销毁,注册表保持为空
func (r *Registry) Initialize(defs []catalog.Definition) error {
	if r.Initialized() {
		r.logger.Infof("pool registry [%s] re-initialize, drain %d pools", r.generation, len(r.pools))
		r.Reset()
	}

	pools := make(map[ResourceType]*Pool, len(defs))
	types := make([]ResourceType, 0, len(defs))
	abort := func() {
		for _, p := range pools {
			p.teardown()
		}
	}

	for _, d := range defs {
		rt := NewResourceType(d.Name)
		if _, ok := pools[rt]; ok {
			abort()
			return fmt.Errorf("%w: [%s] (from name %q)", def.ErrResourceTypeExists, rt, d.Name)
		}
		p, err := NewPool(rt, d.PreloadAmount, d.Factory, r.opts...)
		if err != nil {
			abort()
			return err
		}
		p.onEvict = r.forget
		pools[rt] = p
		types = append(types, rt)
	}

	r.pools = pools
	r.types = types
	r.generation = uuid.NewString()
	for _, rt := range types {
		r.logger.Debugf("pool [%s] preloaded %d", rt, pools[rt].ObjectsFree())
	}
	r.logger.Infof("pool registry [%s] initialized with %d types", r.generation, len(types))
	return nil
}

func (r *Registry) Initialized() bool {
	return r.generation != ""
}

func (r *Registry) Generation() string {
	return r.generation
}

// Reset 尽量优雅地清空注册表
//
// 先取消所有延时回收的定时器,再让所有正在使用的实例自己回收,最后销毁所有池子
func (r *Registry) Reset() {
	r.cancelPendingTimers()

	for _, rt := range r.types {
		p := r.pools[rt]
		for _, h := range p.usedHandles() {
			r.recycle(p, h)
		}
	}

	// Recycle里可能又发起了延时回收
	r.cancelPendingTimers()

	for _, rt := range r.types {
		r.pools[rt].teardown()
	}
	clear(r.pools)
	clear(r.owners)
	r.types = nil
	r.generation = ""
}

func (r *Registry) cancelPendingTimers() {
	if r.scheduler == nil {
		return
	}
	for _, rt := range r.types {
		for _, id := range r.pools[rt].pendingTimers() {
			r.scheduler.Cancel(id)
		}
	}
}

func (r *Registry) recycle(p *Pool, h inf.IRecycle) {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Errorf("pool [%s] recycle %T panic: %v", p.resourceType, h, err)
		}
	}()
	h.Recycle()
}

// forget 实例被移除时清掉反向索引
func (r *Registry) forget(h inf.IRecycle) {
	delete(r.owners, h)
}

func (r *Registry) Pool(rt ResourceType) (*Pool, error) {
	p, ok := r.pools[rt]
	if !ok {
		return nil, fmt.Errorf("%w: [%s]", def.ErrUnknownResourceType, rt)
	}
	return p, nil
}

// Types 按初始化顺序返回所有资源类型
func (r *Registry) Types() []ResourceType {
	types := make([]ResourceType, len(r.types))
	copy(types, r.types)
	return types
}

// Fetch 从对应的池子里取出一个实例
func (r *Registry) Fetch(rt ResourceType) (inf.IRecycle, error) {
	p, err := r.Pool(rt)
	if err != nil {
		return nil, err
	}
	h, err := p.FetchFree()
	if err != nil {
		return nil, err
	}
	r.owners[h] = p
	return h, nil
}

func (r *Registry) FetchByName(name string) (inf.IRecycle, error) {
	return r.Fetch(NewResourceType(name))
}

// ResolvePoolFor 查找句柄所属的池子,只认通过Fetch取出过的句柄
func (r *Registry) ResolvePoolFor(h inf.IRecycle) (*Pool, error) {
	if h == nil {
		return nil, def.ErrNilHandle
	}
	if !isComparable(h) {
		return nil, fmt.Errorf("%w: %T", def.ErrHandleNotOwned, h)
	}
	p, ok := r.owners[h]
	if !ok {
		return nil, fmt.Errorf("%w: %T %p %s", def.ErrHandleNotOwned, h, h, describeRef(h))
	}
	return p, nil
}

// Instantiate 创建一个不进池子的一次性实例,之后Release它会返回ErrHandleNotOwned
func (r *Registry) Instantiate(rt ResourceType) (inf.IRecycle, error) {
	p, err := r.Pool(rt)
	if err != nil {
		return nil, err
	}
	h, err := p.factory.Create(string(rt))
	if err != nil {
		return nil, fmt.Errorf("%w: resource type [%s]: %w", def.ErrFactoryFailed, rt, err)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: resource type [%s] factory returned %w", def.ErrFactoryFailed, rt, def.ErrNilHandle)
	}
	activate(h)
	return h, nil
}

func (r *Registry) Stats() []Stats {
	stats := make([]Stats, 0, len(r.types))
	for _, rt := range r.types {
		stats = append(stats, r.pools[rt].Stats())
	}
	return stats
}

func describeRef(h inf.IRecycle) string {
	ref := h.GetPoolEntry()
	if ref.IsZero() {
		return "(not pooled)"
	}
	return fmt.Sprintf("(entry %s#%d)", ref.ResourceType, ref.EntryId)
}
