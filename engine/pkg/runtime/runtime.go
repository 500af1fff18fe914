// Package runtime
// @Title  对象池运行时
// @Description  进程内唯一的上下文对象,持有时钟、注册表、监控和单例,替代全局静态变量
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package runtime

import (
	"fmt"
	"time"

	"github.com/njtc406/emberpool/engine/pkg/catalog"
	"github.com/njtc406/emberpool/engine/pkg/config"
	"github.com/njtc406/emberpool/engine/pkg/def"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
	"github.com/njtc406/emberpool/engine/pkg/metrics"
	"github.com/njtc406/emberpool/engine/pkg/pool"
	"github.com/njtc406/emberpool/engine/pkg/utils/asynclib"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
	"github.com/njtc406/emberpool/engine/pkg/utils/timer"
	"github.com/robfig/cron/v3"
)

// Runtime 除了Post/Call/Start/Stop/IsRunning之外的方法都只能在主循环里调用
//
// 主循环没有启动时(比如测试)可以在任意单个协程里直接调用,并通过Clock().Advance推进时间
type Runtime struct {
	conf       *config.PoolConf
	logger     log.ILogger
	clock      *timer.Clock
	registry   *pool.Registry
	collector  *metrics.Collector
	executor   *asynclib.Executor
	singletons map[pool.ResourceType]inf.IRecycle

	report      cron.Schedule // 统计日志的时间表,nil表示不输出
	reportTimer uint64

	loop loop
}

var _ inf.IComponent = (*Runtime)(nil)

func New(conf *config.PoolConf, opts ...Option) (*Runtime, error) {
	conf = config.FixPoolConf(conf)
	o := &options{
		logger: log.SysLogger,
		start:  time.Now(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.collector == nil {
		o.collector = metrics.NewCollector()
	}

	r := &Runtime{
		conf:       conf,
		logger:     o.logger,
		clock:      timer.NewClock(o.start, timer.WithLogger(o.logger)),
		collector:  o.collector,
		executor:   asynclib.NewExecutor(conf.AsyncPoolSize),
		singletons: make(map[pool.ResourceType]inf.IRecycle),
	}
	r.registry = pool.NewRegistry(r.clock, pool.WithLogger(o.logger), pool.WithObserver(o.collector))

	if conf.StatsReportSpec != "" {
		sched, err := cron.ParseStandard(conf.StatsReportSpec)
		if err != nil {
			r.executor.Release()
			return nil, fmt.Errorf("parse stats report spec %q: %w", conf.StatsReportSpec, err)
		}
		r.report = sched
	}
	r.loop.init(conf.MailboxSize)
	return r, nil
}

// Init 用定义列表初始化注册表,已经初始化过时先清空
func (r *Runtime) Init(defs []catalog.Definition) error {
	r.dropSingletons()
	if r.registry.Initialized() {
		// 先回收旧的实例,回收过程中还会更新旧类型的指标
		r.registry.Reset()
	}
	r.collector.Reset()
	if err := r.registry.Initialize(defs); err != nil {
		return err
	}
	r.scheduleReport()
	return nil
}

// InitFromFile 从目录文件初始化
func (r *Runtime) InitFromFile(path string) error {
	defs, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	return r.Init(defs)
}

// Reset 回收所有实例并销毁所有池子,之后需要重新Init
func (r *Runtime) Reset() {
	r.dropSingletons()
	r.registry.Reset()
	if r.reportTimer != 0 {
		r.clock.Cancel(r.reportTimer)
		r.reportTimer = 0
	}
	r.collector.Reset()
}

// Spawn 从池子里取出一个实例并执行放置回调
func (r *Runtime) Spawn(name string, opts ...SpawnOption) (inf.IRecycle, error) {
	h, err := r.registry.FetchByName(name)
	if err != nil {
		return nil, err
	}
	o := &spawnOptions{}
	for _, opt := range opts {
		opt(o)
	}
	for _, p := range o.placements {
		p(h)
	}
	return h, nil
}

// Free 回收实例,delay>0时延时回收,重复回收会被合并
func (r *Runtime) Free(h inf.IRecycle, delay time.Duration) (pool.ReleaseResult, error) {
	return r.registry.Release(h, delay)
}

// Instantiate 创建一个不进池子的实例
func (r *Runtime) Instantiate(name string, opts ...SpawnOption) (inf.IRecycle, error) {
	h, err := r.registry.Instantiate(pool.NewResourceType(name))
	if err != nil {
		return nil, err
	}
	o := &spawnOptions{}
	for _, opt := range opts {
		opt(o)
	}
	for _, p := range o.placements {
		p(h)
	}
	return h, nil
}

// Singleton 每个类型最多一个的实例,第一次调用时创建,实例被销毁后会重新创建,Reset时丢弃
func (r *Runtime) Singleton(name string) (inf.IRecycle, error) {
	rt := pool.NewResourceType(name)
	if h, ok := r.singletons[rt]; ok {
		if d, ok := h.(inf.IDestroyed); !ok || !d.IsDestroyed() {
			return h, nil
		}
		delete(r.singletons, rt)
	}
	h, err := r.registry.Instantiate(rt)
	if err != nil {
		return nil, err
	}
	r.singletons[rt] = h
	return h, nil
}

func (r *Runtime) dropSingletons() {
	for rt, h := range r.singletons {
		if d, ok := h.(inf.IDestroy); ok {
			d.Destroy()
		}
		delete(r.singletons, rt)
	}
}

func (r *Runtime) Stats() []pool.Stats {
	return r.registry.Stats()
}

func (r *Runtime) Registry() *pool.Registry {
	return r.registry
}

func (r *Runtime) Clock() *timer.Clock {
	return r.clock
}

func (r *Runtime) Collector() *metrics.Collector {
	return r.collector
}

// Tick 推进时钟,主循环的ticker调用
func (r *Runtime) Tick(now time.Time) int {
	n := r.clock.Tick(now)
	r.collector.OnTimerFired(n)
	return n
}

// scheduleReport 按cron时间表注册下一次统计日志
func (r *Runtime) scheduleReport() {
	if r.report == nil {
		return
	}
	if r.reportTimer != 0 {
		r.clock.Cancel(r.reportTimer)
	}
	now := r.clock.Now()
	next := r.report.Next(now)
	if next.IsZero() {
		r.reportTimer = 0
		return
	}
	r.reportTimer = r.clock.AfterFunc(next.Sub(now), "stats_report", func() {
		r.reportTimer = 0
		r.reportStats()
		r.scheduleReport()
	})
}

// reportStats 快照在主循环里取,采样和写日志放到协程池
func (r *Runtime) reportStats() {
	stats := r.registry.Stats()
	logger := r.logger
	err := r.executor.Go(func() {
		writeReport(logger, stats, true)
	})
	if err != nil {
		writeReport(logger, stats, false)
	}
}

func writeReport(logger log.ILogger, stats []pool.Stats, sample bool) {
	fields := log.Fields{"pools": len(stats)}
	if sample {
		fields["cpu"] = fmt.Sprintf("%.2f", cpuLoad())
		fields["mem"] = fmt.Sprintf("%.2f", memLoad())
	}
	entry := logger.WithFields(fields)
	entry.Info("pool stats report")
	for i := range stats {
		entry.Infof("pool stats %s", stats[i].String())
	}
}

// Start 启动主循环
func (r *Runtime) Start() error {
	if r.loop.closed.Load() {
		return def.ErrRuntimeClosed
	}
	if !r.loop.running.CompareAndSwap(false, true) {
		return nil
	}
	r.loop.wg.Add(1)
	go r.run()
	r.logger.Infof("pool runtime started, tick interval %s", r.conf.TickInterval)
	return nil
}

// Stop 停止主循环,剩下的任务执行完之后清空注册表,之后不能再Start
func (r *Runtime) Stop() {
	if !r.loop.closed.CompareAndSwap(false, true) {
		return
	}
	if r.loop.running.Load() {
		close(r.loop.closeCh)
		r.loop.wg.Wait()
	} else {
		r.Reset()
	}
	r.executor.Release()
	r.logger.Info("pool runtime stopped")
}

func (r *Runtime) IsRunning() bool {
	return r.loop.running.Load()
}
