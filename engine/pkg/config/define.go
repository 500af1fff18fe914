// Package config
// @Title  配置定义
// @Description  对象池运行时的配置
// @Author  yr  2024/11/28
// @Update  yr  2025/8/2
package config

import (
	"time"

	"github.com/njtc406/emberpool/engine/pkg/utils/log"
)

const (
	Debug   = `debug`
	Release = `release`
)

type AppConf struct {
	SystemStatus string          `binding:"oneof=debug release"` // 系统状态(debug/release)
	CachePath    string          `binding:""`                    // 运行时缓存目录(pid文件)
	Logger       *log.LoggerConf `binding:"required"`            // 系统日志
	Pool         *PoolConf       `binding:"required"`            // 对象池运行时
	Http         *HttpConf       `binding:"required"`            // 调试http服务
}

type PoolConf struct {
	CatalogFile     string        `binding:""`      // 预制体目录文件(为空时只能用代码注册)
	TickInterval    time.Duration `binding:"gt=0"`  // 主循环驱动定时器的间隔(默认16ms)
	MailboxSize     int           `binding:"gt=0"`  // 投递到主循环的任务队列长度(默认1024)
	StatsReportSpec string        `binding:""`      // 统计日志的cron表达式(默认@every 30s,为空不输出)
	AsyncPoolSize   int           `binding:"gte=0"` // 异步协程池大小,实际大小是cpu数*该值(默认4,0不开启)
}

type HttpConf struct {
	Enable       bool              `binding:""`      // 是否开启
	Addr         string            `binding:""`      // 监听地址(默认:8080)
	ReadTimeout  time.Duration     `binding:"gte=0"` // 默认5秒
	WriteTimeout time.Duration     `binding:"gte=0"` // 默认5秒
	Pprof        bool              `binding:""`      // 是否开启/debug/pprof
	Auth         bool              `binding:""`      // 是否开启basic auth认证
	Account      map[string]string `binding:""`      // basic auth认证用户名 -> 密码
}
