// Package log
// @Title  异步写入
// @Description  日志先写入channel,由单独的协程合并之后批量落盘
// @Author  yr  2025/4/17
// @Update  yr  2025/8/2
package log

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultChanBufferSize = 4096
	defaultFlushSize      = 1024 * 64 // 64KB
	defaultFlushInterval  = 1 * time.Second
)

type AsyncWriterConfig struct {
	ChanBufferSize int           `binding:"min=0"` // channel 缓冲大小（单位：条日志）
	FlushSize      int           `binding:"min=0"` // 缓冲区大小，超过后立即 flush（单位：字节）
	FlushInterval  time.Duration `binding:"min=0"` // 定时 flush 间隔
}

// ChannelWriter 异步writer,channel满时阻塞写入方,不会丢日志
type ChannelWriter struct {
	writer io.Writer
	conf   *AsyncWriterConfig

	logChan chan []byte
	closeCh chan struct{}
	closed  int32
	wg      sync.WaitGroup
}

func fixAsyncWriterConf(conf *AsyncWriterConfig) *AsyncWriterConfig {
	if conf == nil {
		conf = &AsyncWriterConfig{}
	}
	if conf.ChanBufferSize <= 0 {
		conf.ChanBufferSize = defaultChanBufferSize
	}
	if conf.FlushSize <= 0 {
		conf.FlushSize = defaultFlushSize
	}
	if conf.FlushInterval <= 0 {
		conf.FlushInterval = defaultFlushInterval
	}
	return conf
}

func NewChannelWriter(w io.Writer, conf *AsyncWriterConfig) *ChannelWriter {
	cw := &ChannelWriter{
		writer:  w,
		conf:    fixAsyncWriterConf(conf),
		closeCh: make(chan struct{}),
	}
	cw.logChan = make(chan []byte, cw.conf.ChanBufferSize)
	cw.wg.Add(1)
	go cw.loop()
	return cw
}

func (cw *ChannelWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if atomic.LoadInt32(&cw.closed) == 1 {
		// 已经关闭,直接同步写
		return cw.writer.Write(p)
	}
	// 拷贝一份,上层会复用buffer
	data := make([]byte, len(p))
	copy(data, p)

	select {
	case cw.logChan <- data:
	case <-cw.closeCh:
		return cw.writer.Write(data)
	}
	return len(p), nil
}

func (cw *ChannelWriter) loop() {
	defer cw.wg.Done()

	buf := new(bytes.Buffer)
	ticker := time.NewTicker(cw.conf.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if buf.Len() > 0 {
			_, _ = cw.writer.Write(buf.Bytes())
			buf.Reset()
		}
	}

	for {
		select {
		case <-cw.closeCh:
			// 把channel里剩下的读干净
			for {
				select {
				case msg := <-cw.logChan:
					buf.Write(msg)
				default:
					flush()
					return
				}
			}
		case <-ticker.C:
			flush()
		case msg := <-cw.logChan:
			buf.Write(msg)
			if buf.Len() >= cw.conf.FlushSize {
				flush()
			}
		}
	}
}

func (cw *ChannelWriter) Close() error {
	if !atomic.CompareAndSwapInt32(&cw.closed, 0, 1) {
		return nil
	}
	close(cw.closeCh)
	cw.wg.Wait()
	return nil
}
