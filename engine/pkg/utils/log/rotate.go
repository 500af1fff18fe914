// Package log
// @Title  日志切割
// @Description  desc
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

// rotateNew pattern是strftime格式,例如 ./logs/pool_%Y%m%d.log
func rotateNew(pattern string, maxAge, rotationTime time.Duration) (*rotatelogs.RotateLogs, error) {
	return rotatelogs.New(
		pattern,
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotationTime),
	)
}

func shortCaller(frame *runtime.Frame) (function string, file string) {
	return "", fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
