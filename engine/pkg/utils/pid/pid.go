// Package pid
// 模块名: 进程id
// 功能描述: 启动时把进程id写入缓存目录,退出时删除
// 作者:  yr  2023/4/22 0022 2:03
// 最后更新:  yr  2025/8/2
package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileName pid文件名
func FileName(cachePath, name string) string {
	return filepath.Join(cachePath, name+".pid")
}

// RecordPID 记录pid
func RecordPID(cachePath, name string) error {
	return os.WriteFile(FileName(cachePath, name), []byte(strconv.Itoa(GetPid())), 0644)
}

// ReadPID 读取pid文件
func ReadPID(cachePath, name string) (int, error) {
	data, err := os.ReadFile(FileName(cachePath, name))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// DeletePID 删除pid
func DeletePID(cachePath, name string) {
	_ = os.Remove(FileName(cachePath, name))
}

// GetPid 获取pid
func GetPid() int {
	return os.Getpid()
}
