package runtime

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/njtc406/emberpool/engine/pkg/catalog"
	"github.com/njtc406/emberpool/engine/pkg/config"
	"github.com/njtc406/emberpool/engine/pkg/def"
	inf "github.com/njtc406/emberpool/engine/pkg/interfaces"
	"github.com/njtc406/emberpool/engine/pkg/pool"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 8, 2, 12, 0, 0, 0, time.UTC)

type shell struct {
	ref       inf.PoolEntryRef
	active    bool
	destroyed bool
	parent    string
}

func (s *shell) Recycle()                          {}
func (s *shell) SetPoolEntry(ref inf.PoolEntryRef) { s.ref = ref }
func (s *shell) GetPoolEntry() inf.PoolEntryRef    { return s.ref }
func (s *shell) SetActive(active bool)             { s.active = active }
func (s *shell) IsDestroyed() bool                 { return s.destroyed }
func (s *shell) Destroy()                          { s.destroyed = true }

func newShell(string) (inf.IRecycle, error) { return &shell{}, nil }

func testDefs() []catalog.Definition {
	return catalog.New().
		AddFunc("Shell", 2, newShell).
		AddFunc("Boss", 0, newShell).
		Definitions()
}

func newTestRuntime(t *testing.T, conf *config.PoolConf, opts ...Option) *Runtime {
	opts = append([]Option{WithLogger(log.NewDiscard()), WithStartTime(start)}, opts...)
	r, err := New(conf, opts...)
	require.NoError(t, err)
	require.NoError(t, r.Init(testDefs()))
	return r
}

func TestRuntime_SpawnAndFree(t *testing.T) {
	r := newTestRuntime(t, &config.PoolConf{})

	h, err := r.Spawn("shell", WithPlacement(func(h inf.IRecycle) {
		h.(*shell).parent = "turret"
	}))
	require.NoError(t, err)
	assert.Equal(t, "turret", h.(*shell).parent)
	assert.True(t, h.(*shell).active)

	res, err := r.Free(h, 200*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, pool.ReleaseScheduled, res)
	res, err = r.Free(h, 200*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, pool.ReleaseSuppressed, res)

	assert.Equal(t, 1, r.Tick(start.Add(200*time.Millisecond)))
	st := r.Stats()
	require.Len(t, st, 2)
	assert.Equal(t, 0, st[0].InUse)
	assert.Equal(t, 2, st[0].Free)
	assert.False(t, h.(*shell).active)

	_, err = r.Spawn("missile")
	assert.ErrorIs(t, err, def.ErrUnknownResourceType)
}

func TestRuntime_InstantiateAndSingleton(t *testing.T) {
	r := newTestRuntime(t, &config.PoolConf{})

	h, err := r.Instantiate("Boss", WithPlacement(func(h inf.IRecycle) { h.(*shell).parent = "arena" }))
	require.NoError(t, err)
	assert.Equal(t, "arena", h.(*shell).parent)
	_, err = r.Free(h, 0)
	assert.ErrorIs(t, err, def.ErrHandleNotOwned)

	boss, err := r.Singleton("Boss")
	require.NoError(t, err)
	again, err := r.Singleton(" boss ")
	require.NoError(t, err)
	assert.Same(t, boss, again)

	boss.(*shell).destroyed = true
	fresh, err := r.Singleton("Boss")
	require.NoError(t, err)
	assert.NotSame(t, boss, fresh)

	_, err = r.Singleton("missile")
	assert.ErrorIs(t, err, def.ErrUnknownResourceType)

	r.Reset()
	assert.True(t, fresh.(*shell).destroyed)
	assert.Empty(t, r.Stats())
}

func TestRuntime_ReInit(t *testing.T) {
	r := newTestRuntime(t, &config.PoolConf{})
	h, err := r.Spawn("shell")
	require.NoError(t, err)
	boss, err := r.Singleton("boss")
	require.NoError(t, err)

	require.NoError(t, r.Init(testDefs()))
	assert.True(t, h.(*shell).destroyed)
	assert.True(t, boss.(*shell).destroyed)
	_, err = r.Free(h, 0)
	assert.ErrorIs(t, err, def.ErrHandleNotOwned)
}

// selfFreeing 被回收时自己把自己放回池子
type selfFreeing struct {
	shell
	rt *Runtime
}

func (s *selfFreeing) Recycle() { _, _ = s.rt.Free(s, 0) }

func TestRuntime_ReInitDropsOldMetrics(t *testing.T) {
	r, err := New(&config.PoolConf{}, WithLogger(log.NewDiscard()), WithStartTime(start))
	require.NoError(t, err)
	require.NoError(t, r.Init(catalog.New().AddFunc("Old", 1, func(string) (inf.IRecycle, error) {
		return &selfFreeing{rt: r}, nil
	}).Definitions()))
	_, err = r.Spawn("old")
	require.NoError(t, err)

	require.NoError(t, r.Init(catalog.New().AddFunc("New", 1, newShell).Definitions()))

	reg := r.Collector().Registry()
	for _, name := range []string{"emberpool_objects_free", "emberpool_objects_in_use"} {
		n, err := testutil.GatherAndCount(reg, name)
		require.NoError(t, err)
		assert.Equal(t, 1, n, name)
	}
}

func TestRuntime_StatsReport(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.New(log.WithOut(buf), log.WithLevel(log.InfoLevel))
	r, err := New(&config.PoolConf{StatsReportSpec: "@every 1s"}, WithLogger(logger), WithStartTime(start))
	require.NoError(t, err)
	require.NoError(t, r.Init(testDefs()))
	require.Equal(t, 1, r.Clock().Len())

	r.Clock().Advance(999 * time.Millisecond)
	assert.NotContains(t, buf.String(), "pool stats report")

	r.Clock().Advance(time.Millisecond)
	assert.Contains(t, buf.String(), "pool stats report")
	assert.Contains(t, buf.String(), "shell")
	// 下一次已经注册
	assert.Equal(t, 1, r.Clock().Len())

	r.Reset()
	assert.Equal(t, 0, r.Clock().Len())
}

func TestRuntime_BadReportSpec(t *testing.T) {
	_, err := New(&config.PoolConf{StatsReportSpec: "every now and then"}, WithLogger(log.NewDiscard()))
	assert.Error(t, err)
}

func TestRuntime_Loop(t *testing.T) {
	r := newTestRuntime(t, &config.PoolConf{TickInterval: time.Millisecond}, WithStartTime(time.Now()))
	assert.ErrorIs(t, r.Post(func() {}), def.ErrRuntimeNotRunning)

	require.NoError(t, r.Start())
	require.NoError(t, r.Start())
	assert.True(t, r.IsRunning())

	var h inf.IRecycle
	var err error
	require.NoError(t, r.Call(func() {
		h, err = r.Spawn("shell")
	}))
	require.NoError(t, err)

	require.NoError(t, r.Call(func() {
		_, err = r.Free(h, 20*time.Millisecond)
	}))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		var free int
		if r.Call(func() { free = r.Stats()[0].Free }) != nil {
			return false
		}
		return free == 2
	}, 2*time.Second, 5*time.Millisecond)

	// panic不会让主循环退出
	assert.Error(t, r.Call(func() { panic("boom") }))
	assert.NoError(t, r.Call(func() {}))

	r.Stop()
	r.Stop()
	assert.False(t, r.IsRunning())
	assert.True(t, h.(*shell).destroyed)
	assert.ErrorIs(t, r.Post(func() {}), def.ErrRuntimeClosed)
	assert.ErrorIs(t, r.Call(func() {}), def.ErrRuntimeClosed)
	assert.ErrorIs(t, r.Start(), def.ErrRuntimeClosed)
}

func TestRuntime_MailboxFull(t *testing.T) {
	r := newTestRuntime(t, &config.PoolConf{TickInterval: time.Hour, MailboxSize: 1})
	require.NoError(t, r.Start())
	defer r.Stop()

	started := make(chan struct{})
	block := make(chan struct{})
	require.NoError(t, r.Post(func() {
		close(started)
		<-block
	}))
	<-started

	var ran sync.WaitGroup
	ran.Add(1)
	require.NoError(t, r.Post(ran.Done))
	assert.ErrorIs(t, r.Post(func() {}), def.ErrMailboxIsFull)

	close(block)
	ran.Wait()
}

func TestRuntime_StopWithoutStart(t *testing.T) {
	r := newTestRuntime(t, &config.PoolConf{})
	h, err := r.Spawn("shell")
	require.NoError(t, err)
	r.Stop()
	assert.True(t, h.(*shell).destroyed)
}
