package main

import (
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
)

// Bullet 示例预制体
type Bullet struct {
	ref       inf.PoolEntryRef
	active    bool
	destroyed bool

	X, Y   float64
	Speed  float64
	Damage int
}

func (b *Bullet) Recycle() {
	// 由持有者调用runtime.Free回收,这里不需要做什么
}

func (b *Bullet) SetPoolEntry(ref inf.PoolEntryRef) {
	b.ref = ref
}

func (b *Bullet) GetPoolEntry() inf.PoolEntryRef {
	return b.ref
}

func (b *Bullet) SetActive(active bool) {
	b.active = active
}

func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

func (b *Bullet) Destroy() {
	b.destroyed = true
}

func (b *Bullet) Reset() {
	b.X, b.Y = 0, 0
	b.Speed = 0
	b.Damage = 0
}

// Explosion 不进池子的单例特效
type Explosion struct {
	Bullet
}

func newBullet(string) (inf.IRecycle, error) {
	return &Bullet{}, nil
}

func newExplosion(string) (inf.IRecycle, error) {
	return &Explosion{}, nil
}
