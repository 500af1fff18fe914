// Package metrics
// @Title  对象池监控
// @Description  把对象池的事件转成prometheus指标,每个Collector有自己的registry
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package metrics

import (
	"net/http"

	"github.com/njtc406/emberpool/engine/pkg/pool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "emberpool"

// Collector 实现pool.Observer,回调在主循环里执行,prometheus的指标本身是并发安全的
type Collector struct {
	registry *prometheus.Registry

	inUse      *prometheus.GaugeVec
	free       *prometheus.GaugeVec
	fetches    *prometheus.CounterVec
	grows      *prometheus.CounterVec
	releases   *prometheus.CounterVec
	evictions  *prometheus.CounterVec
	loopTasks  prometheus.Counter
	timerFired prometheus.Counter
}

var _ pool.Observer = (*Collector)(nil)

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		inUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objects_in_use",
			Help:      "Instances currently checked out, per resource type",
		}, []string{"type"}),
		free: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objects_free",
			Help:      "Instances available for reuse, per resource type",
		}, []string{"type"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Fetch requests served, per resource type",
		}, []string{"type"}),
		grows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grow_total",
			Help:      "Instances created because the free set was empty",
		}, []string{"type"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "release_total",
			Help:      "Release requests by result (freed, scheduled, suppressed, stale)",
		}, []string{"type", "result"}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evict_total",
			Help:      "Instances removed because they were destroyed out of band",
		}, []string{"type"}),
		loopTasks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loop_tasks_total",
			Help:      "Closures executed by the runtime loop",
		}),
		timerFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timers_fired_total",
			Help:      "Timer callbacks fired by the runtime clock",
		}),
	}
	c.registry.MustRegister(
		c.inUse,
		c.free,
		c.fetches,
		c.grows,
		c.releases,
		c.evictions,
		c.loopTasks,
		c.timerFired,
	)
	return c
}

func (c *Collector) OnFetch(resourceType string, grew bool) {
	c.fetches.WithLabelValues(resourceType).Inc()
	if grew {
		c.grows.WithLabelValues(resourceType).Inc()
	}
}

func (c *Collector) OnRelease(resourceType string, result string) {
	c.releases.WithLabelValues(resourceType, result).Inc()
}

func (c *Collector) OnEvict(resourceType string) {
	c.evictions.WithLabelValues(resourceType).Inc()
}

func (c *Collector) OnSize(resourceType string, inUse, free int) {
	c.inUse.WithLabelValues(resourceType).Set(float64(inUse))
	c.free.WithLabelValues(resourceType).Set(float64(free))
}

// OnLoopTask 主循环执行了n个任务
func (c *Collector) OnLoopTask(n int) {
	if n > 0 {
		c.loopTasks.Add(float64(n))
	}
}

// OnTimerFired 一次Tick触发了n个定时器
func (c *Collector) OnTimerFired(n int) {
	if n > 0 {
		c.timerFired.Add(float64(n))
	}
}

// Reset 注册表重建时清掉所有带类型标签的指标
func (c *Collector) Reset() {
	c.inUse.Reset()
	c.free.Reset()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler /metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
