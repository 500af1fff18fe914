/*
 * Copyright (c) 2024. YR. All rights reserved
 */

// Package log
// 模块名: 日志
// 功能描述: 基于logrus的日志,支持文件切割和异步写入
// 作者:  yr  2024/3/2 0002 18:57
// 最后更新:  yr  2025/8/2
package log

import (
	"errors"
	"io"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/njtc406/logrus"
)

type ILogger = *logrus.Logger
type Fields = logrus.Fields
type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

var levelMap = map[string]Level{
	"panic": PanicLevel,
	"fatal": FatalLevel,
	"error": ErrorLevel,
	"warn":  WarnLevel,
	"info":  InfoLevel,
	"debug": DebugLevel,
	"trace": TraceLevel,
}

var RotationTimeErr = errors.New("rotation time must be between 1m and 24h")

var locker sync.Mutex
var writerLog = map[ILogger]io.WriteCloser{}

func logWriter(logger ILogger, writer io.WriteCloser) {
	locker.Lock()
	defer locker.Unlock()

	if _, ok := writerLog[logger]; ok {
		return
	}

	writerLog[logger] = writer
}

func logRelease(logger ILogger) {
	locker.Lock()
	defer locker.Unlock()
	if writer, ok := writerLog[logger]; ok {
		_ = writer.Close()
		delete(writerLog, logger)
	}
}

type AsyncMode struct {
	Enable bool
	Config *AsyncWriterConfig
}

type LoggerConf struct {
	Path         string        `binding:""`                                              // 日志文件路径
	Name         string        `binding:""`                                              // 日志文件名称
	Level        string        `binding:"oneof=panic fatal error warn info debug trace"` // 日志写入级别 小于设置级别的类型都会被记录
	AsyncMode    *AsyncMode    `binding:""`                                              // 是否异步写入
	Caller       bool          `binding:""`                                              // 是否打印调用者
	FullCaller   bool          `binding:""`                                              // 是否打印完整调用者
	Color        bool          `binding:""`                                              // 是否打印级别色彩
	MaxAge       time.Duration `binding:"min=1m,max=720h"`                               // 日志保留时间 min=1m,max=720h 最小1分钟,最大1个月,默认15天
	RotationTime time.Duration `binding:"min=1m,max=24h"`                                // 日志切割时间 min=1m,max=24h 最小1分钟,最大1天,默认1天
}

type Option func(l ILogger)

func WithLevel(level Level) Option {
	return func(l ILogger) {
		l.SetLevel(level)
	}
}

func WithOut(w io.Writer) Option {
	return func(l ILogger) {
		l.SetOutput(w)
	}
}

func WithCaller(caller bool) Option {
	return func(l ILogger) {
		l.SetReportCaller(caller)
	}
}

func WithColor(color bool) Option {
	return func(l ILogger) {
		if f, ok := l.Formatter.(*logrus.TextFormatter); ok {
			f.ForceColors = color
			f.DisableColors = !color
		}
	}
}

// WithFullCaller 关闭时只打印文件名和行号
func WithFullCaller(full bool) Option {
	return func(l ILogger) {
		if full {
			return
		}
		if f, ok := l.Formatter.(*logrus.TextFormatter); ok {
			f.CallerPrettyfier = shortCaller
		}
	}
}

// New creates a new Logger object.
func New(opts ...Option) ILogger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		DisableColors:   true,
	})
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewDiscard 不输出任何内容的日志,测试用
func NewDiscard() ILogger {
	return New(WithOut(io.Discard), WithLevel(PanicLevel))
}

func fixConf(conf *LoggerConf) *LoggerConf {
	if conf == nil {
		conf = &LoggerConf{
			Level: "info",
			AsyncMode: &AsyncMode{
				Enable: false,
			},
			MaxAge:       time.Hour * 24 * 15, // 默认15天
			RotationTime: time.Hour * 24,
		}
	}

	if conf.Level == "" {
		conf.Level = "info"
	}

	if conf.MaxAge == 0 {
		conf.MaxAge = time.Hour * 24 * 15
	}

	if conf.RotationTime == 0 {
		conf.RotationTime = time.Hour * 24
	}

	return conf
}

// NewDefaultLogger 创建一个通用日志对象
// filePath 日志输出目录
// conf.Name 日志文件名(最终文件名会是 filePath/fileName_20060102.log)(为空时只输出到stdout)
// openStdout 是否开启标准输出(如果fileName为空,且openStdout未开启,那么将不会有任何日志信息被记录)
func NewDefaultLogger(filePath string, conf *LoggerConf, openStdout bool) (ILogger, error) {
	conf = fixConf(conf)
	var writers []io.Writer

	if len(conf.Name) > 0 {
		if len(filePath) == 0 {
			filePath = "./" // 默认当前目录
		}
		if conf.RotationTime < time.Minute || conf.RotationTime > time.Hour*24 {
			return nil, RotationTimeErr
		}
		pattern := "_%Y%m%d.log"
		if conf.RotationTime < time.Hour {
			pattern = "_%Y%m%d%H%M.log"
		} else if conf.RotationTime < time.Hour*24 {
			pattern = "_%Y%m%d%H.log"
		}

		w, err := rotateNew(path.Join(filePath, conf.Name)+pattern, conf.MaxAge, conf.RotationTime)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}

	if openStdout {
		writers = append(writers, os.Stdout)
	} else {
		writers = append(writers, io.Discard)
	}

	level := strings.ToLower(conf.Level)
	if _, ok := levelMap[level]; !ok {
		level = "error"
	}

	var writerCloser io.WriteCloser
	var writer io.Writer
	if conf.AsyncMode != nil && conf.AsyncMode.Enable {
		// 开启了异步模式,使用异步writer代替同步writer
		w := NewChannelWriter(io.MultiWriter(writers...), conf.AsyncMode.Config)
		writer = w
		writerCloser = w
	} else {
		writer = io.MultiWriter(writers...)
	}

	logger := New(
		WithLevel(levelMap[level]),
		WithCaller(conf.Caller),
		WithColor(conf.Color),
		WithOut(writer),
		WithFullCaller(conf.FullCaller),
	)

	if writerCloser != nil {
		logWriter(logger, writerCloser)
	}

	return logger, nil
}

func Release(logger ILogger) {
	if logger == nil {
		return
	}

	logRelease(logger)
}
