package flowcontrol

import (
	"sync"

	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
	"github.com/dep2p/go-mcast/pkg/proto"
)

// ============================================================================
//                              Min 策略
// ============================================================================

// minStrategy 跟随最慢存活接收方的策略
//
// 每条状态消息把发送方登记进台账后，以全体存活接收方的最小
// 窗口右沿为下限抬升发送上限；空闲节拍剔除静默超时的接收方，
// 并允许把上限直接下调到重算后的下限。
type minStrategy struct {
	receivers receiverList
	timeoutNs int64

	positionBitsToShift uint8
	initialTermID       int32

	closeOnce sync.Once
}

var _ fcif.Strategy = (*minStrategy)(nil)

// NewMinStrategy 创建 Min 策略
//
// 超时取进程级 Min 策略族默认值（环境变量 MCAST_MIN_FLOW_CONTROL_RECEIVER_TIMEOUT）。
func NewMinStrategy(params fcif.ChannelParams) (fcif.Strategy, error) {
	return newMinStrategy(params, minFamilyTimeoutNs()), nil
}

// newMinStrategy 按显式超时创建 Min 策略
func newMinStrategy(params fcif.ChannelParams, timeoutNs int64) *minStrategy {
	return &minStrategy{
		timeoutNs:           timeoutNs,
		positionBitsToShift: params.PositionBitsToShift(),
		initialTermID:       params.InitialTermID,
	}
}

// OnStatusMessage 登记接收方并按最慢接收方抬升发送上限
//
// 消息驱动的更新从不下调上限：返回 max(sndLmt, 最小窗口右沿)。
func (s *minStrategy) OnStatusMessage(sm *proto.StatusMessage, sndLmt int64, nowNs int64) int64 {
	position := sm.Position(s.positionBitsToShift, s.initialTermID)
	s.receivers.upsert(sm.ReceiverID, position, sm.ReceiverWindow, nowNs)

	floor, ok := s.receivers.minWindowEdge()
	if !ok || sndLmt > floor {
		return sndLmt
	}
	return floor
}

// OnIdle 剔除静默接收方后重估发送上限
//
// 台账非空时直接返回最小窗口右沿（允许下调）；
// 台账为空时接收方约束解除，上限保持不变。
func (s *minStrategy) OnIdle(nowNs int64, sndLmt int64, _ int64, _ bool) int64 {
	s.receivers.prune(nowNs, s.timeoutNs)

	if floor, ok := s.receivers.minWindowEdge(); ok {
		return floor
	}
	return sndLmt
}

// Close 释放接收方台账，可重复调用
func (s *minStrategy) Close() error {
	s.closeOnce.Do(s.receivers.release)
	return nil
}
