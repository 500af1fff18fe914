package pool

import (
	"errors"
	"time"

	"github.com/njtc406/emberpool/engine/pkg/catalog"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
	"github.com/njtc406/emberpool/engine/pkg/utils/timer"
)

var testLogger = log.NewDiscard()

type bullet struct {
	ref          inf.PoolEntryRef
	serial       int
	active       bool
	destroyed    bool
	resets       int
	panicOnReset bool
	recycle      func(b *bullet)
	Damage       int
}

func (b *bullet) Recycle() {
	if b.recycle != nil {
		b.recycle(b)
	}
}
func (b *bullet) SetPoolEntry(ref inf.PoolEntryRef) { b.ref = ref }
func (b *bullet) GetPoolEntry() inf.PoolEntryRef    { return b.ref }
func (b *bullet) SetActive(active bool)             { b.active = active }
func (b *bullet) IsDestroyed() bool                 { return b.destroyed }
func (b *bullet) Destroy()                          { b.destroyed = true }
func (b *bullet) Reset() {
	if b.panicOnReset {
		panic("reset failed")
	}
	b.resets++
	b.Damage = 0
}

// countingFactory 记录创建次数,failAt>0时第failAt次创建失败
type countingFactory struct {
	created []*bullet
	failAt  int
	calls   int
}

var errBoom = errors.New("boom")

func (f *countingFactory) Create(string) (inf.IRecycle, error) {
	f.calls++
	if f.failAt > 0 && f.calls == f.failAt {
		return nil, errBoom
	}
	b := &bullet{serial: len(f.created) + 1}
	f.created = append(f.created, b)
	return b, nil
}

// recordingObserver 记录所有回调
type recordingObserver struct {
	fetches  int
	grows    int
	releases map[string]int
	evicts   int
	lastUse  map[string][2]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{releases: map[string]int{}, lastUse: map[string][2]int{}}
}

func (o *recordingObserver) OnFetch(_ string, grew bool) {
	o.fetches++
	if grew {
		o.grows++
	}
}
func (o *recordingObserver) OnRelease(_ string, result string) { o.releases[result]++ }
func (o *recordingObserver) OnEvict(string)                    { o.evicts++ }
func (o *recordingObserver) OnSize(rt string, inUse, free int) {
	o.lastUse[rt] = [2]int{inUse, free}
}

var testStart = time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)

func newTestClock() *timer.Clock {
	return timer.NewClock(testStart, timer.WithLogger(testLogger))
}

func newTestRegistry(defs ...catalog.Definition) (*Registry, *timer.Clock, error) {
	clock := newTestClock()
	r := NewRegistry(clock, WithLogger(testLogger))
	return r, clock, r.Initialize(defs)
}

// checkAll 检查注册表里所有池子的划分
func checkAll(r *Registry) error {
	for _, rt := range r.types {
		if err := r.pools[rt].checkPartition(); err != nil {
			return err
		}
	}
	return nil
}
