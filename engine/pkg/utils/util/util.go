// Package util
// @Title  title
// @Description  desc
// @Author  yr  2025/4/24
// @Update  yr  2025/8/2
package util

import (
	"math/rand/v2"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/exp/constraints"
)

func GetCPULoad() float64 {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return 0.0
	}
	return percents[0] / 100 // 转成 0.0 - 1.0 之间
}

// GetMemLoad 系统内存使用率 0.0 - 1.0
func GetMemLoad() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return 0.0
	}
	return vm.UsedPercent / 100
}

// RandN 返回[0, n)之间的随机数,n<=0时返回0
func RandN[T constraints.Integer | constraints.Float](n T) T {
	if n <= 0 {
		return 0
	}
	var half T = 1
	half /= 2
	if half != 0 {
		// 浮点
		return T(rand.Float64() * float64(n))
	}
	return T(rand.Int64N(int64(n)))
}
