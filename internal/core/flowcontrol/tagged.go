package flowcontrol

import (
	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
	"github.com/dep2p/go-mcast/pkg/proto"
	"github.com/dep2p/go-mcast/pkg/types"
)

// ============================================================================
//                              Tagged 策略
// ============================================================================

// taggedStrategy 仅跟踪指定组标签接收方的 Min 策略变体
//
// 台账中只登记组标签匹配的接收方。台账为空时，非匹配消息按
// Max 语义抬升上限（引导回退），保证首个带标签接收方出现之前
// 发送不会被卡死。
//
// 台账非空时，非匹配消息不登记、不更新任何条目，但本次计算
// 仍然扫描既有集合求下限。
type taggedStrategy struct {
	minStrategy
	receiverTag types.ReceiverTag
}

var _ fcif.Strategy = (*taggedStrategy)(nil)

// NewTaggedStrategy 创建 Tagged 策略
//
// 组标签与可选的每通道超时来自通道的流控配置串；未提供超时时
// 回退到 Tagged 策略族的进程级默认值。
func NewTaggedStrategy(params fcif.ChannelParams) (fcif.Strategy, error) {
	opts, err := ParseOptions(params.Channel.FlowControl)
	if err != nil {
		return nil, err
	}

	timeoutNs := opts.TimeoutNs
	if timeoutNs == 0 {
		timeoutNs = taggedFamilyTimeoutNs()
	}

	return newTaggedStrategy(params, opts.ReceiverTag, timeoutNs), nil
}

// newTaggedStrategy 按显式标签与超时创建 Tagged 策略
func newTaggedStrategy(params fcif.ChannelParams, tag types.ReceiverTag, timeoutNs int64) *taggedStrategy {
	return &taggedStrategy{
		minStrategy: minStrategy{
			timeoutNs:           timeoutNs,
			positionBitsToShift: params.PositionBitsToShift(),
			initialTermID:       params.InitialTermID,
		},
		receiverTag: tag,
	}
}

// OnStatusMessage 按组标签限定登记范围后执行 Min 语义
func (s *taggedStrategy) OnStatusMessage(sm *proto.StatusMessage, sndLmt int64, nowNs int64) int64 {
	tag, present := sm.ReceiverTag()
	isFromPreferred := present && tag == s.receiverTag

	position := sm.Position(s.positionBitsToShift, s.initialTermID)

	// 引导回退：首个带标签接收方出现前按 Max 语义处理
	if !isFromPreferred && s.receivers.size() == 0 {
		windowEdge := position + sm.ReceiverWindow
		if sndLmt > windowEdge {
			return sndLmt
		}
		return windowEdge
	}

	if isFromPreferred {
		s.receivers.upsert(sm.ReceiverID, position, sm.ReceiverWindow, nowNs)
	}

	floor, ok := s.receivers.minWindowEdge()
	if !ok || sndLmt > floor {
		return sndLmt
	}
	return floor
}
