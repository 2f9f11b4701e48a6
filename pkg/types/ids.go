// Package types 定义 go-mcast 的基础类型
//
// 这是整个系统的最底层包，不依赖任何其他 mcast 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
package types

// ============================================================================
//                              流与会话标识
// ============================================================================

// StreamID 流标识符
//
// 同一通道上可以复用多个流，由发布方在创建发布时指定。
type StreamID int32

// SessionID 会话标识符
//
// 区分同一 (通道, 流) 上的不同发布实例。
type SessionID int32

// RegistrationID 注册标识符
//
// 驱动层为每次发布注册分配的唯一标识，单调递增。
type RegistrationID int64

// ============================================================================
//                              接收方标识
// ============================================================================

// ReceiverID 接收方唯一标识符
//
// 由接收方自行生成并随状态消息上报，发送方将其视为不透明数值，
// 不与套接字地址关联。
type ReceiverID int64

// ReceiverTag 接收方组标签
//
// 状态消息中可选携带的组标识，用于把流控跟踪范围限定到一组接收方。
type ReceiverTag int32

// ============================================================================
//                              通道描述符
// ============================================================================

// ChannelDescriptor 通道描述符
//
// 仅包含流控子系统需要消费的字段，完整的通道 URI 解析由通道层负责。
type ChannelDescriptor struct {
	// URI 原始通道 URI（仅用于错误信息）
	URI string

	// FlowControl 通道 URI 中 fc 参数的原始值，未配置时为空串
	FlowControl string

	// IsMulticast 是否为多播通道
	IsMulticast bool
}

// HasFlowControl 返回通道是否携带了流控配置串
func (d ChannelDescriptor) HasFlowControl() bool {
	return d.FlowControl != ""
}
