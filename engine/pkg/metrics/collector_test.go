package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/njtc406/emberpool/engine/pkg/pool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Observer(t *testing.T) {
	c := NewCollector()

	c.OnFetch("bullet", false)
	c.OnFetch("bullet", true)
	c.OnSize("bullet", 2, 0)
	c.OnRelease("bullet", pool.ReleaseFreed.String())
	c.OnRelease("bullet", pool.ReleaseSuppressed.String())
	c.OnRelease("bullet", pool.ReleaseSuppressed.String())
	c.OnEvict("bullet")
	c.OnLoopTask(3)
	c.OnTimerFired(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.fetches.WithLabelValues("bullet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.grows.WithLabelValues("bullet")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.inUse.WithLabelValues("bullet")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.free.WithLabelValues("bullet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.releases.WithLabelValues("bullet", "freed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.releases.WithLabelValues("bullet", "suppressed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.evictions.WithLabelValues("bullet")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.loopTasks))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.timerFired))

	c.Reset()
	assert.Equal(t, 0, testutil.CollectAndCount(c.inUse))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.OnSize("rocket", 1, 4)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `emberpool_objects_free{type="rocket"} 4`)
	assert.Contains(t, string(body), `emberpool_objects_in_use{type="rocket"} 1`)
}
