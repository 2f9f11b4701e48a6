package flowcontrol

import (
	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
	"github.com/dep2p/go-mcast/pkg/proto"
	"github.com/dep2p/go-mcast/pkg/types"
)

// ============================================================================
//                              测试辅助
// ============================================================================

// testTermLength 测试用 term 长度：64KB，移位位数 16
const testTermLength = 64 * 1024

// testParams 构造测试用通道参数
func testParams(fc string) fcif.ChannelParams {
	return fcif.ChannelParams{
		Channel: types.ChannelDescriptor{
			URI:         "mcast://224.0.1.1:40456?fc=" + fc,
			FlowControl: fc,
			IsMulticast: true,
		},
		StreamID:           1001,
		RegistrationID:     1,
		InitialTermID:      0,
		TermBufferCapacity: testTermLength,
	}
}

// statusAt 构造一条位于首个 term 的状态消息
//
// position 即 term offset，窗口右沿为 position + window。
func statusAt(id types.ReceiverID, position int32, window int64) *proto.StatusMessage {
	return &proto.StatusMessage{
		StreamID:              1001,
		ConsumptionTermID:     0,
		ConsumptionTermOffset: position,
		ReceiverWindow:        window,
		ReceiverID:            id,
	}
}

// taggedStatusAt 构造携带组标签的状态消息
func taggedStatusAt(id types.ReceiverID, position int32, window int64, tag types.ReceiverTag) *proto.StatusMessage {
	sm := statusAt(id, position, window)
	sm.SetReceiverTag(tag)
	return sm
}
