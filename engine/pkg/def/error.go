package def

import (
	"errors"
)

// 定义系统错误

var (
	ErrUnknownResourceType = errors.New("unknown resource type")           // 资源类型未注册
	ErrResourceTypeExists  = errors.New("resource type already registered") // 资源类型重复注册
	ErrHandleNotOwned      = errors.New("handle not owned by any pool")     // 句柄不是由注册表发出的
	ErrUnknownHandle       = errors.New("unknown handle")                   // 句柄不属于该池
	ErrStaleHandle         = errors.New("stale handle")                     // 句柄对应的实例已经在池外被销毁
	ErrHandleNotInUse      = errors.New("handle not in use")                // 句柄当前不在使用中
	ErrFactoryFailed       = errors.New("factory failed")                   // 工厂创建实例失败
	ErrNilFactory          = errors.New("nil factory")                      // 未提供工厂
	ErrNilHandle           = errors.New("nil handle")                       // 空句柄
	ErrFactoryNotFound     = errors.New("factory not found")                // 工厂未注册
	ErrRuntimeNotRunning   = errors.New("runtime not running")              // 主循环未运行
	ErrRuntimeClosed       = errors.New("runtime closed")                   // 运行时已关闭
	ErrMailboxIsFull       = errors.New("mailbox is full")                  // 投递队列已满
	ErrServiceIsRunning    = errors.New("service is running")               // 服务已经在运行
)
