package pool

import (
	"reflect"

	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
)

type entryState int8

const (
	entryFree           entryState = iota // 在freeSet中
	entryInUse                            // 在usedSet中
	entryPendingRelease                   // 在usedSet中,等待延时回收
)

func (s entryState) String() string {
	switch s {
	case entryFree:
		return "free"
	case entryInUse:
		return "in_use"
	case entryPendingRelease:
		return "pending_release"
	}
	return "unknown"
}

// poolEntry 池中的一个实例,只属于一个Pool
type poolEntry struct {
	id      uint64 // 池内稳定id,定时器只记录这个id
	handle  inf.IRecycle
	state   entryState
	useSeq  uint64 // 每次取出加一,延时回收的定时器要和它对上才会生效
	timerId uint64 // 延时回收的定时器,没有时为0
}

func (e *poolEntry) inUse() bool {
	return e.state != entryFree
}

func (e *poolEntry) pendingRelease() bool {
	return e.state == entryPendingRelease
}

func activate(h inf.IRecycle) {
	if a, ok := h.(inf.IActivate); ok {
		a.SetActive(true)
	}
}

// hide 新建的实例没有用过,只隐藏不重置
func hide(h inf.IRecycle) {
	if a, ok := h.(inf.IActivate); ok {
		a.SetActive(false)
	}
}

func deactivate(h inf.IRecycle) {
	if r, ok := h.(inf.IReset); ok {
		r.Reset()
	}
	if a, ok := h.(inf.IActivate); ok {
		a.SetActive(false)
	}
}

func isDestroyed(h inf.IRecycle) bool {
	if d, ok := h.(inf.IDestroyed); ok {
		return d.IsDestroyed()
	}
	return false
}

// isComparable 句柄要做map的key,不可比较的类型直接当作未知句柄
func isComparable(h inf.IRecycle) bool {
	return h != nil && reflect.TypeOf(h).Comparable()
}
