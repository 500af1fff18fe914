// Package catalog
// @Title  预制体目录
// @Description  声明式的资源类型注册表,初始化时交给对象池注册表
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package catalog

import (
	"fmt"
	"sync"

	"github.com/njtc406/emberpool/engine/pkg/def"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
)

// Definition 一个资源类型的注册信息
type Definition struct {
	Name          string       // 资源名(会被规范化)
	PreloadAmount int          // 预加载数量
	Factory       inf.IFactory // 实例工厂
}

// Builder 按注册顺序生成Definition列表
type Builder struct {
	defs []Definition
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) Add(name string, preloadAmount int, factory inf.IFactory) *Builder {
	b.defs = append(b.defs, Definition{
		Name:          name,
		PreloadAmount: preloadAmount,
		Factory:       factory,
	})
	return b
}

func (b *Builder) AddFunc(name string, preloadAmount int, f func(resourceType string) (inf.IRecycle, error)) *Builder {
	return b.Add(name, preloadAmount, inf.FactoryFunc(f))
}

func (b *Builder) Definitions() []Definition {
	defs := make([]Definition, len(b.defs))
	copy(defs, b.defs)
	return defs
}

var (
	factoryLock sync.RWMutex
	factoryMap  = make(map[string]inf.IFactory) // 工厂名 -> 工厂
)

// SetFactory 注册工厂,一般在init里调用,目录文件通过名字引用工厂
func SetFactory(name string, factory inf.IFactory) {
	factoryLock.Lock()
	defer factoryLock.Unlock()
	factoryMap[name] = factory
}

func GetFactory(name string) (inf.IFactory, error) {
	factoryLock.RLock()
	defer factoryLock.RUnlock()
	f, ok := factoryMap[name]
	if !ok || f == nil {
		return nil, fmt.Errorf("%w: [%s]", def.ErrFactoryNotFound, name)
	}
	return f, nil
}

// RemoveFactory 测试用
func RemoveFactory(name string) {
	factoryLock.Lock()
	defer factoryLock.Unlock()
	delete(factoryMap, name)
}
