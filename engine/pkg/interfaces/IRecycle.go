// Package interfaces
// @Title  池化对象接口
// @Description  所有可以被对象池管理的实例都需要实现IRecycle
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package interfaces

// IRecycle 池化对象句柄
//
// 实例必须是可比较的(一般是指针),注册表用它做反向索引的key
type IRecycle interface {
	// Recycle 请求回收自己(一般实现为调用 runtime.Free(self, 0))
	Recycle()
	// SetPoolEntry 由对象池在实例创建时绑定所属条目
	SetPoolEntry(entry PoolEntryRef)
	// GetPoolEntry 获取所属条目
	GetPoolEntry() PoolEntryRef
}

// PoolEntryRef 实例和对象池条目的关联
type PoolEntryRef struct {
	ResourceType string // 规范化之后的资源类型
	EntryId      uint64 // 条目在池中的稳定id
}

// IsZero 未绑定到任何对象池(比如Instantiate出来的一次性实例)
func (r PoolEntryRef) IsZero() bool {
	return r.EntryId == 0
}

// IActivate 激活/隐藏,取出时激活,回收时隐藏
type IActivate interface {
	SetActive(active bool)
}

// IDestroyed 实例可能在池外被直接销毁,对象池在回收时会检查
type IDestroyed interface {
	IsDestroyed() bool
}

// IDestroy 对象池销毁时调用
type IDestroy interface {
	Destroy()
}
