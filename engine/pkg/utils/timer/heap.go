package timer

import "time"

// timerHeap 按触发时间排序的小顶堆,触发时间相同的按加入顺序
type timerHeap struct {
	timers []*Timer
}

func (h *timerHeap) Len() int {
	return len(h.timers)
}

func (h *timerHeap) Less(i, j int) bool {
	ti, tj := h.timers[i], h.timers[j]
	if ti.fireTime.Equal(tj.fireTime) {
		return ti.seq < tj.seq
	}
	return ti.fireTime.Before(tj.fireTime)
}

func (h *timerHeap) Swap(i, j int) {
	h.timers[i], h.timers[j] = h.timers[j], h.timers[i]
	h.timers[i].index = i
	h.timers[j].index = j
}

func (h *timerHeap) Push(x interface{}) {
	t := x.(*Timer)
	t.index = len(h.timers)
	h.timers = append(h.timers, t)
}

func (h *timerHeap) Pop() (ret interface{}) {
	l := len(h.timers)
	t := h.timers[l-1]
	h.timers[l-1] = nil
	h.timers = h.timers[:l-1]
	t.index = -1
	return t
}

func (h *timerHeap) peekFireTime() (time.Time, bool) {
	if len(h.timers) == 0 {
		return time.Time{}, false
	}
	return h.timers[0].fireTime, true
}
