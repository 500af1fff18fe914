// Package def
// @Title  常量定义
// @Description  desc
// @Author  yr  2024/11/6
// @Update  yr  2025/8/2
package def

import "time"

const (
	SystemStatusDebug   = `debug`
	SystemStatusRelease = `release`
)

const (
	DefaultTickInterval    = 16 * time.Millisecond // 默认帧间隔(驱动定时器)
	DefaultMailboxSize     = 1024                  // 默认投递队列长度
	DefaultStatsReportSpec = "@every 30s"          // 默认统计上报周期(cron表达式)
	DefaultAsyncPoolSize   = 4                     // 默认协程池大小(会乘以cpu核数)
	DefaultTimerCapacity   = 1024                  // 默认定时器堆初始容量
)

const (
	DefaultConfPath     = "./configs"
	DefaultConfName     = "pool"
	DefaultCatalogFile  = "catalog.toml"
	DefaultEnvPrefix    = "EMBER"
	DefaultHttpAddr     = ":8080"
	DefaultHttpTimeout  = 5 * time.Second
	DefaultResourceName = "none" // 规范化之后为空的资源名使用这个保留名
)
