// Package pool
// 模块名: 统计
// 功能描述: 对象池的统计信息
// 作者:  yr  2025/7/18 0018 0:10
// 最后更新:  yr  2025/8/2
package pool

import (
	"github.com/goccy/go-json"
)

// Stats 对象池统计快照,InUse/Free/Total都是从集合大小算出来的,不单独存储
type Stats struct {
	Name          string `json:"name"`
	PreloadAmount int    `json:"preload_amount"`
	InUse         int    `json:"in_use"`
	Free          int    `json:"free"`
	Total         int    `json:"total"`
	Pending       int    `json:"pending"` // 等待延时回收的数量

	HitCount        int64 `json:"hit_count"`           // 从freeSet中取出
	MissCount       int64 `json:"miss_count"`          // freeSet为空,新建实例(池子扩容)
	TotalAlloc      int64 `json:"total_alloc"`         // 总共创建的实例数(包含预加载)
	ReleaseCount    int64 `json:"release_count"`       // 回到freeSet的次数
	DuplicateCount  int64 `json:"duplicate_count"`     // 被合并掉的重复回收请求
	StaleCount      int64 `json:"stale_count"`         // 在池外被销毁而移除的实例
	MaxObservedUsed int   `json:"max_observed_in_use"` // 同时使用的最大数量
}

func (s *Stats) String() string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}

// statsRecorder 累计计数,只在池子所在的协程里修改
type statsRecorder struct {
	hit        int64
	miss       int64
	totalAlloc int64
	release    int64
	duplicate  int64
	stale      int64
	maxUsed    int
}

func (s *statsRecorder) incHit()        { s.hit++ }
func (s *statsRecorder) incMiss()       { s.miss++ }
func (s *statsRecorder) incTotalAlloc() { s.totalAlloc++ }
func (s *statsRecorder) incRelease()    { s.release++ }
func (s *statsRecorder) incDuplicate()  { s.duplicate++ }
func (s *statsRecorder) incStale()      { s.stale++ }

func (s *statsRecorder) observeUsed(n int) {
	if n > s.maxUsed {
		s.maxUsed = n
	}
}
