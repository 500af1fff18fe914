package pool

import (
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
)

type options struct {
	logger   log.ILogger
	observer Observer
}

type Option func(o *options)

func WithLogger(logger log.ILogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger:   log.SysLogger,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
