// Package interfaces
// @Title  title
// @Description  desc
// @Author  yr  2025/1/15
// @Update  yr  2025/8/2
package interfaces

import "time"

type ITimer interface {
	Do()
	GetName() string
	GetTimerId() uint64
}

// ITimerScheduler 延时回调,回调只会在驱动定时器的那个协程里执行
type ITimerScheduler interface {
	// AfterFunc d之后执行一次f,返回定时器id(永远不为0)
	AfterFunc(d time.Duration, name string, f func()) uint64
	// Cancel 取消还未触发的定时器
	Cancel(timerId uint64) bool
}
