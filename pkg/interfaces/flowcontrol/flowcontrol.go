// Package flowcontrol 定义发送方流控策略接口
//
// 流控策略根据接收方上报的状态消息计算发送上限（snd-lmt）：
//   - Max：跟随最快接收方，从不下压
//   - Min：跟随最慢存活接收方
//   - Tagged：仅跟踪携带指定组标签的接收方
//
// 每个出站流持有且独占一个策略实例，实例内部不做加锁。
package flowcontrol

import (
	"errors"

	"github.com/dep2p/go-mcast/pkg/proto"
	"github.com/dep2p/go-mcast/pkg/types"
)

// ============================================================================
//                              错误定义
// ============================================================================

// 流控配置相关错误，均在通道建立阶段出现，稳态处理路径不产生错误
var (
	// ErrInvalidOptions 流控配置串非法（字段格式、取值或长度）
	ErrInvalidOptions = errors.New("invalid flow control options")

	// ErrStrategyNameMissing 配置串缺少策略名
	ErrStrategyNameMissing = errors.New("no flow control strategy name specified")

	// ErrUnknownStrategy 策略名未注册且无法经外部解析器解析
	ErrUnknownStrategy = errors.New("unknown flow control strategy")
)

// ============================================================================
//                              Strategy 接口
// ============================================================================

// Strategy 发送方流控策略
//
// 所有方法都是同步、无阻塞的，运行时间与被跟踪接收方数量成正比。
// 实例由单一发送执行上下文独占，方法不做内部加锁。
type Strategy interface {
	// OnStatusMessage 处理一条接收方状态消息，返回新的发送上限
	//
	// sndLmt 为当前发送上限，nowNs 为驱动层时钟的当前纳秒时间。
	OnStatusMessage(sm *proto.StatusMessage, sndLmt int64, nowNs int64) int64

	// OnIdle 空闲节拍回调，重估接收方存活性并返回新的发送上限
	//
	// 与 OnStatusMessage 不同，空闲节拍允许把上限下调到重新计算后
	// 的窗口下沿。sndPos 与 isEndOfStream 透传给需要的策略实现。
	OnIdle(nowNs int64, sndLmt int64, sndPos int64, isEndOfStream bool) int64

	// Close 释放策略持有的接收方跟踪状态
	//
	// 通道拆除时调用且至多生效一次，重复调用返回 nil。
	Close() error
}

// ============================================================================
//                              构造契约
// ============================================================================

// ChannelParams 策略构造参数
//
// 所有策略构造器共享同一份参数，因而可以互换地放入注册表。
type ChannelParams struct {
	// Channel 通道描述符
	Channel types.ChannelDescriptor

	// StreamID 流标识
	StreamID types.StreamID

	// RegistrationID 发布注册标识
	RegistrationID types.RegistrationID

	// InitialTermID 发布的初始 term id
	InitialTermID int32

	// TermBufferCapacity term 缓冲区容量（字节）
	TermBufferCapacity int32
}

// PositionBitsToShift 返回本通道位置换算的移位位数
func (p ChannelParams) PositionBitsToShift() uint8 {
	return types.PositionBitsToShift(p.TermBufferCapacity)
}

// Supplier 策略构造器
//
// 返回就绪的策略实例，或在配置/资源问题时返回错误。
type Supplier func(params ChannelParams) (Strategy, error)
