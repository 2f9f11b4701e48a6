package flowcontrol

import (
	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
	"github.com/dep2p/go-mcast/pkg/proto"
)

// ============================================================================
//                              Max 策略
// ============================================================================

// maxStrategy 跟随最快接收方的无状态策略
//
// 发送上限永远抬升到最近一条状态消息的窗口右沿，从不下压。
// 用于单播通道，或"不为慢接收方降速"的多播场景。
type maxStrategy struct {
	positionBitsToShift uint8
	initialTermID       int32
}

var _ fcif.Strategy = (*maxStrategy)(nil)

// NewMaxStrategy 创建 Max 策略
func NewMaxStrategy(params fcif.ChannelParams) (fcif.Strategy, error) {
	return &maxStrategy{
		positionBitsToShift: params.PositionBitsToShift(),
		initialTermID:       params.InitialTermID,
	}, nil
}

// OnStatusMessage 用消息窗口右沿抬升发送上限
func (s *maxStrategy) OnStatusMessage(sm *proto.StatusMessage, sndLmt int64, _ int64) int64 {
	windowEdge := sm.WindowEdge(s.positionBitsToShift, s.initialTermID)
	if sndLmt > windowEdge {
		return sndLmt
	}
	return windowEdge
}

// OnIdle 空闲节拍下上限保持不变
func (s *maxStrategy) OnIdle(_ int64, sndLmt int64, _ int64, _ bool) int64 {
	return sndLmt
}

// Close 无状态，无需释放
func (s *maxStrategy) Close() error {
	return nil
}
