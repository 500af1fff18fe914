// Package httpmodule
// 模块名: http服务
// 功能描述: 对象池的调试http服务,查看统计和prometheus指标
// 作者:  yr  2024/1/4 0004 23:41
// 最后更新:  yr  2025/8/2
package httpmodule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/njtc406/emberpool/engine/pkg/config"
	"github.com/njtc406/emberpool/engine/pkg/def"
	"github.com/njtc406/emberpool/engine/pkg/pool"
	"github.com/njtc406/emberpool/engine/pkg/sysModule/httpmodule/auth"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
)

// StatsSource 统计数据来源,Call会把函数投递到对象池所在的协程里执行
type StatsSource interface {
	Call(f func()) error
	Stats() []pool.Stats
}

type HttpModule struct {
	logger    log.ILogger
	systemMod string
	wg        *sync.WaitGroup
	running   uint32
	handler   *gin.Engine
	server    *http.Server
	conf      *config.HttpConf
	source    StatsSource
	metrics   http.Handler
}

var _ interface {
	Start() error
	Stop()
} = (*HttpModule)(nil)

// NewHttpModule 创建新的HTTP服务器,metrics为nil时不注册/metrics
func NewHttpModule(conf *config.HttpConf, source StatsSource, metrics http.Handler, logger log.ILogger, systemMod string) *HttpModule {
	if logger == nil {
		logger = log.SysLogger
	}
	hs := &HttpModule{
		wg:        new(sync.WaitGroup),
		conf:      conf,
		source:    source,
		metrics:   metrics,
		logger:    logger,
		systemMod: systemMod,
	}
	hs.init()
	return hs
}

func (hs *HttpModule) init() {
	// 运行模式
	if hs.systemMod == config.Release {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	// 默认日志输出
	gin.DefaultWriter = io.MultiWriter(hs.logger.WriterLevel(log.InfoLevel))       // 设置默认日志输出为info级别
	gin.DefaultErrorWriter = io.MultiWriter(hs.logger.WriterLevel(log.ErrorLevel)) // 设置默认错误日志输出为error级别

	hs.handler = gin.New()
	// 默认中间件
	hs.handler.Use(
		gzip.Gzip(gzip.DefaultCompression),
		gin.LoggerWithFormatter(hs.logFormatter), // 这个设置的是默认日志的输出格式
		gin.Recovery(),
	)
	if hs.conf.Auth {
		// 目前只支持basic auth
		hs.handler.Use(auth.BasicAuth(hs.conf.Account))
	}
	hs.handler.ForwardedByClientIP = true

	hs.handler.GET("/pools", hs.listPools)
	hs.handler.GET("/pools/:type", hs.getPool)
	if hs.metrics != nil {
		hs.handler.GET("/metrics", gin.WrapH(hs.metrics))
	}
	if hs.conf.Pprof {
		hs.registerPprof()
	}

	hs.server = &http.Server{
		Addr:              hs.conf.Addr, // 服务监听端口
		Handler:           hs.handler,
		ReadHeaderTimeout: hs.conf.ReadTimeout,
		ReadTimeout:       hs.conf.ReadTimeout,
		WriteTimeout:      hs.conf.WriteTimeout,
	}
}

func (hs *HttpModule) logFormatter(p gin.LogFormatterParams) string {
	return fmt.Sprintf("[%s] %s %s %s %d %s \"%s\" %s\n",
		p.ClientIP,
		p.Method,
		p.Path,
		p.Request.Proto,
		p.StatusCode,
		p.Latency,
		p.Request.UserAgent(),
		p.ErrorMessage,
	)
}

// Handler 路由,测试用
func (hs *HttpModule) Handler() http.Handler {
	return hs.handler
}

func (hs *HttpModule) snapshot() ([]pool.Stats, error) {
	var stats []pool.Stats
	err := hs.source.Call(func() {
		stats = hs.source.Stats()
	})
	return stats, err
}

func (hs *HttpModule) writeJSON(c *gin.Context, code int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(code, "application/json; charset=utf-8", data)
}

func (hs *HttpModule) writeError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, def.ErrRuntimeNotRunning) || errors.Is(err, def.ErrRuntimeClosed) || errors.Is(err, def.ErrMailboxIsFull) {
		code = http.StatusServiceUnavailable
	}
	hs.writeJSON(c, code, gin.H{"error": err.Error()})
}

// listPools GET /pools
func (hs *HttpModule) listPools(c *gin.Context) {
	stats, err := hs.snapshot()
	if err != nil {
		hs.writeError(c, err)
		return
	}
	if stats == nil {
		stats = []pool.Stats{}
	}
	hs.writeJSON(c, http.StatusOK, stats)
}

// getPool GET /pools/:type,类型名会先规范化
func (hs *HttpModule) getPool(c *gin.Context) {
	rt := pool.NewResourceType(c.Param("type"))
	stats, err := hs.snapshot()
	if err != nil {
		hs.writeError(c, err)
		return
	}
	for i := range stats {
		if stats[i].Name == rt.String() {
			hs.writeJSON(c, http.StatusOK, stats[i])
			return
		}
	}
	hs.writeJSON(c, http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s: [%s]", def.ErrUnknownResourceType, rt)})
}

func (hs *HttpModule) Start() error {
	if !atomic.CompareAndSwapUint32(&hs.running, 0, 1) {
		return def.ErrServiceIsRunning
	}
	hs.wg.Add(1)
	go hs.run()
	return nil
}

func (hs *HttpModule) run() {
	defer hs.wg.Done()
	hs.logger.Infof("listen %s", hs.server.Addr)
	if err := hs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		hs.logger.Error(err)
	}
}

func (hs *HttpModule) Stop() {
	if atomic.LoadUint32(&hs.running) == 0 {
		return
	}
	defer atomic.StoreUint32(&hs.running, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := hs.server.Shutdown(ctx); err != nil {
		hs.logger.Warn(err)
	}
	hs.wg.Wait()
}
