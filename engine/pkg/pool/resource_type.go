// Package pool
// @Title  资源类型
// @Description  资源类型是规范化之后的名字,所有查找都只用它做key
// @Author  yr  2025/8/2
// @Update  yr  2025/8/2
package pool

import (
	"strings"

	"github.com/njtc406/emberpool/engine/pkg/def"
	"github.com/patrickmn/go-cache"
)

// ResourceType 只能通过NewResourceType构造,两个值相等当且仅当规范化之后的名字相等
type ResourceType string

// 原始名字 -> 规范化结果,配置里的名字基本是固定的几个,不需要过期
var nameCache = cache.New(cache.NoExpiration, 0)

// NewResourceType 规范化资源名
//
// 去掉首尾空白和所有非字母数字字符,去掉开头的数字,转小写;结果为空时返回保留名 none
func NewResourceType(name string) ResourceType {
	if v, ok := nameCache.Get(name); ok {
		return v.(ResourceType)
	}
	rt := ResourceType(normalizeName(name))
	nameCache.SetDefault(name, rt)
	return rt
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)

	var sb strings.Builder
	sb.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= '0' && c <= '9':
			if sb.Len() == 0 {
				// 开头的数字丢掉
				continue
			}
			sb.WriteByte(c)
		case c >= 'a' && c <= 'z':
			sb.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			sb.WriteByte(c + ('a' - 'A'))
		}
	}

	if sb.Len() == 0 {
		return def.DefaultResourceName
	}
	return sb.String()
}

func (rt ResourceType) String() string {
	return string(rt)
}
