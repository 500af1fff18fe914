// Package interfaces
// @Title  title
// @Description  desc
// @Author  yr  2025/2/13
// @Update  yr  2025/8/2
package interfaces

type IComponent interface {
	// Start 启动
	Start() error
	// Stop 停止
	Stop()
}
