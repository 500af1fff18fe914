package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelWriter_FlushOnClose(t *testing.T) {
	buf := new(bytes.Buffer)
	w := NewChannelWriter(buf, &AsyncWriterConfig{ChanBufferSize: 16, FlushSize: 1 << 20, FlushInterval: time.Hour})

	for i := 0; i < 10; i++ {
		_, err := w.Write([]byte("line\n"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	assert.Equal(t, 10, bytes.Count(buf.Bytes(), []byte("line\n")))

	// 关闭之后同步写
	_, err := w.Write([]byte("late\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "late")
	assert.NoError(t, w.Close())
}

func TestNewDefaultLogger_File(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewDefaultLogger(dir, &LoggerConf{
		Name:         "pool",
		Level:        "debug",
		RotationTime: time.Hour * 24,
		MaxAge:       time.Hour,
	}, false)
	require.NoError(t, err)
	defer Release(logger)

	logger.Debug("bullet fetched")

	files, err := filepath.Glob(filepath.Join(dir, "pool_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "bullet fetched")
}

func TestNewDefaultLogger_Conf(t *testing.T) {
	_, err := NewDefaultLogger(t.TempDir(), &LoggerConf{Name: "pool", RotationTime: time.Second}, false)
	assert.ErrorIs(t, err, RotationTimeErr)

	logger, err := NewDefaultLogger("", &LoggerConf{Level: "loud"}, false)
	require.NoError(t, err)
	assert.Equal(t, ErrorLevel, logger.GetLevel())

	logger, err = NewDefaultLogger("", nil, false)
	require.NoError(t, err)
	assert.Equal(t, InfoLevel, logger.GetLevel())
}

func TestInitClose(t *testing.T) {
	Init(&LoggerConf{Level: "warn"}, false)
	assert.Equal(t, WarnLevel, SysLogger.GetLevel())
	Close()
	assert.Equal(t, PanicLevel, SysLogger.GetLevel())
}
