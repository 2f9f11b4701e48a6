// Package proto 定义发送侧消费的网络协议消息（wire format）
//
// 与 pkg/types 的分工：proto 定义跨网络传输的消息布局，
// types 定义 Go 内部数据结构。状态消息走热路径，采用定长
// 小端序二进制布局以便零拷贝解码，不使用通用序列化框架。
//
// 流控子系统只读取状态消息中的少数字段，完整的协议编解码
// 由收发层负责；这里保留最小可用的定长编解码实现。
package proto

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dep2p/go-mcast/pkg/types"
)

// ============================================================================
//                              状态消息布局
// ============================================================================

// 状态消息为小端序定长记录，之后可选追加 4 字节接收方组标签：
//
//	偏移  0: session id           int32
//	偏移  4: stream id            int32
//	偏移  8: consumption term id  int32
//	偏移 12: consumption offset   int32
//	偏移 16: receiver window      int64
//	偏移 24: receiver id          int64
//	偏移 32: receiver tag         int32（可选扩展）
const (
	// StatusMessageLength 定长部分长度
	StatusMessageLength = 32

	// StatusMessageTaggedLength 携带组标签扩展时的总长度
	StatusMessageTaggedLength = StatusMessageLength + 4
)

// 协议解码相关错误
var (
	// ErrShortStatusMessage 状态消息长度不足
	ErrShortStatusMessage = errors.New("status message too short")
)

// ============================================================================
//                              StatusMessage
// ============================================================================

// StatusMessage 接收方周期性上报的状态消息
//
// 上报已消费位置（term id + term offset）与当前接收窗口，
// 发送方据此推进发送上限。
type StatusMessage struct {
	SessionID             types.SessionID
	StreamID              types.StreamID
	ConsumptionTermID     int32
	ConsumptionTermOffset int32
	ReceiverWindow        int64
	ReceiverID            types.ReceiverID

	// 组标签扩展
	hasReceiverTag bool
	receiverTag    types.ReceiverTag
}

// ReceiverTag 返回消息携带的组标签
//
// 第二个返回值指示扩展字段是否存在。
func (m *StatusMessage) ReceiverTag() (types.ReceiverTag, bool) {
	return m.receiverTag, m.hasReceiverTag
}

// SetReceiverTag 设置组标签扩展（接收方编码侧与测试使用）
func (m *StatusMessage) SetReceiverTag(tag types.ReceiverTag) {
	m.receiverTag = tag
	m.hasReceiverTag = true
}

// Position 按发布方参数换算消息上报的线性消费位置
func (m *StatusMessage) Position(positionBitsToShift uint8, initialTermID int32) int64 {
	return types.ComputePosition(
		m.ConsumptionTermID, m.ConsumptionTermOffset, positionBitsToShift, initialTermID)
}

// WindowEdge 按发布方参数换算接收窗口右沿（位置 + 窗口）
func (m *StatusMessage) WindowEdge(positionBitsToShift uint8, initialTermID int32) int64 {
	return m.Position(positionBitsToShift, initialTermID) + m.ReceiverWindow
}

// ============================================================================
//                              编解码
// ============================================================================

// DecodeStatusMessage 从缓冲区解码状态消息
//
// 缓冲区长度达到 StatusMessageTaggedLength 时解析组标签扩展，
// 介于两者之间的多余字节被忽略（向前兼容未来扩展）。
func DecodeStatusMessage(buf []byte) (*StatusMessage, error) {
	if len(buf) < StatusMessageLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortStatusMessage, len(buf))
	}

	m := &StatusMessage{
		SessionID:             types.SessionID(binary.LittleEndian.Uint32(buf[0:])),
		StreamID:              types.StreamID(binary.LittleEndian.Uint32(buf[4:])),
		ConsumptionTermID:     int32(binary.LittleEndian.Uint32(buf[8:])),
		ConsumptionTermOffset: int32(binary.LittleEndian.Uint32(buf[12:])),
		ReceiverWindow:        int64(binary.LittleEndian.Uint64(buf[16:])),
		ReceiverID:            types.ReceiverID(binary.LittleEndian.Uint64(buf[24:])),
	}

	if len(buf) >= StatusMessageTaggedLength {
		m.hasReceiverTag = true
		m.receiverTag = types.ReceiverTag(binary.LittleEndian.Uint32(buf[StatusMessageLength:]))
	}

	return m, nil
}

// AppendTo 将状态消息编码追加到缓冲区
func (m *StatusMessage) AppendTo(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.SessionID))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.StreamID))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.ConsumptionTermID))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.ConsumptionTermOffset))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.ReceiverWindow))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.ReceiverID))

	if m.hasReceiverTag {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(m.receiverTag))
	}

	return buf
}
