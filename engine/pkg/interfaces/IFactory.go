// Package interfaces
// @Title  实例工厂
// @Description  desc
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package interfaces

// IFactory 创建一个全新的实例
type IFactory interface {
	Create(resourceType string) (IRecycle, error)
}

// FactoryFunc 函数适配
type FactoryFunc func(resourceType string) (IRecycle, error)

func (f FactoryFunc) Create(resourceType string) (IRecycle, error) {
	return f(resourceType)
}
