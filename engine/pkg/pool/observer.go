package pool

// Observer 对象池事件监听(监控用),所有回调都在池子所在的协程里同步执行
type Observer interface {
	// OnFetch grew为true表示这次取出新建了实例
	OnFetch(resourceType string, grew bool)
	// OnRelease result为ReleaseResult.String()
	OnRelease(resourceType string, result string)
	// OnEvict 实例在池外被销毁,已从池中移除
	OnEvict(resourceType string)
	// OnSize 池子大小变化
	OnSize(resourceType string, inUse, free int)
}

type nopObserver struct{}

func (nopObserver) OnFetch(string, bool)     {}
func (nopObserver) OnRelease(string, string) {}
func (nopObserver) OnEvict(string)           {}
func (nopObserver) OnSize(string, int, int)  {}
