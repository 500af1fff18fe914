// Package interfaces
// @Title  title
// @Description  desc
// @Author  yr  2024/11/14
// @Update  yr  2025/8/2
package interfaces

// IReset 回收进池子时调用,清理上一次使用留下的状态
type IReset interface {
	Reset()
}
