package flowcontrol

import (
	"github.com/dep2p/go-mcast/pkg/types"
)

// ============================================================================
//                              接收方台账
// ============================================================================

// receiverEntry 单个接收方的存活与位置记录
//
// lastPosition 只增不减；lastPositionPlusWindow 每次按消息自带的
// 位置加窗口重算，不从棘轮后的 lastPosition 派生。
type receiverEntry struct {
	lastPosition           int64
	lastPositionPlusWindow int64
	timeOfLastStatusNs     int64
	receiverID             types.ReceiverID
}

// receiverList 以 receiverID 为键的接收方记录集合
//
// 顺序无关：追加插入，删除用尾部交换。条目仅由超时剔除销毁，
// 没有显式的"离开"信号。
type receiverList struct {
	entries []receiverEntry
}

// upsert 更新或登记一个接收方
//
// 已存在时棘轮推进 lastPosition、重算窗口右沿并刷新时间戳；
// 不存在时追加新条目。返回是否为新登记。
func (l *receiverList) upsert(id types.ReceiverID, position, window, nowNs int64) bool {
	for i := range l.entries {
		e := &l.entries[i]
		if e.receiverID != id {
			continue
		}

		if position > e.lastPosition {
			e.lastPosition = position
		}
		e.lastPositionPlusWindow = position + window
		e.timeOfLastStatusNs = nowNs
		return false
	}

	l.entries = append(l.entries, receiverEntry{
		lastPosition:           position,
		lastPositionPlusWindow: position + window,
		timeOfLastStatusNs:     nowNs,
		receiverID:             id,
	})
	return true
}

// prune 剔除静默超时的接收方
//
// 自最高下标向下扫描，命中时与尾部条目交换后收缩，
// 保证单趟降序扫描恰好访问每个存活条目一次。
func (l *receiverList) prune(nowNs, timeoutNs int64) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].timeOfLastStatusNs+timeoutNs-nowNs < 0 {
			last := len(l.entries) - 1
			l.entries[i] = l.entries[last]
			l.entries = l.entries[:last]
		}
	}
}

// minWindowEdge 返回所有条目中最小的窗口右沿
//
// 集合为空时第二个返回值为 false。
func (l *receiverList) minWindowEdge() (int64, bool) {
	if len(l.entries) == 0 {
		return 0, false
	}

	min := l.entries[0].lastPositionPlusWindow
	for _, e := range l.entries[1:] {
		if e.lastPositionPlusWindow < min {
			min = e.lastPositionPlusWindow
		}
	}
	return min, true
}

// size 当前被跟踪的接收方数量
func (l *receiverList) size() int {
	return len(l.entries)
}

// release 释放底层存储
func (l *receiverList) release() {
	l.entries = nil
}
