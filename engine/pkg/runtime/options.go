package runtime

import (
	"time"

	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
	"github.com/njtc406/emberpool/engine/pkg/metrics"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
)

type options struct {
	logger    log.ILogger
	collector *metrics.Collector
	start     time.Time
}

type Option func(o *options)

func WithLogger(logger log.ILogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCollector 不设置时使用新建的Collector
func WithCollector(collector *metrics.Collector) Option {
	return func(o *options) {
		o.collector = collector
	}
}

// WithStartTime 时钟的初始时间,测试用
func WithStartTime(start time.Time) Option {
	return func(o *options) {
		o.start = start
	}
}

// Placement 取出实例之后的放置回调(父节点、位置、场景之类),对象池本身不关心
type Placement func(h inf.IRecycle)

type spawnOptions struct {
	placements []Placement
}

type SpawnOption func(o *spawnOptions)

func WithPlacement(p Placement) SpawnOption {
	return func(o *spawnOptions) {
		if p != nil {
			o.placements = append(o.placements, p)
		}
	}
}
