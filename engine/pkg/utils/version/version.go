// Package version
// 模块名: 版本号
// 功能描述: 当前版本和点分版本号比较
package version

import (
	"strconv"
	"strings"
)

var Version = "0.1.0"

// CompareVersion 返回 1 表示 v1 > v2（即 v1 更新），
// 返回 -1 表示 v1 < v2（即 v2 更新），返回 0 表示两者相等。
// 缺少的段按0处理,非数字段返回错误
func CompareVersion(v1, v2 string) (int, error) {
	s1 := strings.Split(strings.TrimPrefix(strings.TrimSpace(v1), "v"), ".")
	s2 := strings.Split(strings.TrimPrefix(strings.TrimSpace(v2), "v"), ".")
	n := max(len(s1), len(s2))
	for i := 0; i < n; i++ {
		num1, err := segment(s1, i)
		if err != nil {
			return 0, err
		}
		num2, err := segment(s2, i)
		if err != nil {
			return 0, err
		}
		if num1 > num2 {
			return 1, nil
		} else if num1 < num2 {
			return -1, nil
		}
	}
	return 0, nil
}

func segment(s []string, i int) (int, error) {
	if i >= len(s) {
		return 0, nil
	}
	return strconv.Atoi(s[i])
}

// IsVersionSufficient 返回 true 当 current 版本大于等于 minVersion 时。
func IsVersionSufficient(current, minVersion string) (bool, error) {
	c, err := CompareVersion(current, minVersion)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}
