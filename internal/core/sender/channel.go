package sender

import (
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-mcast/internal/config"
	"github.com/dep2p/go-mcast/internal/util/logger"
	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
	"github.com/dep2p/go-mcast/pkg/proto"
)

// 包级别日志实例
var log = logger.Logger("sender")

// 发送通道相关错误
var (
	// ErrChannelClosed 通道已关闭
	ErrChannelClosed = errors.New("sender channel closed")
)

// ============================================================================
//                              Channel
// ============================================================================

// Channel 单个出站流的发送通道
//
// 策略实例由通道独占，通道内部用互斥串行化状态消息处理与
// 空闲节拍，策略自身无需加锁。
type Channel struct {
	params   fcif.ChannelParams
	strategy fcif.Strategy
	clk      clock.Clock
	interval int64 // 空闲节拍周期（ns）

	mu     sync.Mutex
	sndLmt int64
	sndPos int64
	eos    bool
	closed bool

	done      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
}

// newChannel 创建发送通道并启动空闲节拍循环
func newChannel(cfg config.SenderConfig, params fcif.ChannelParams, strategy fcif.Strategy, clk clock.Clock) *Channel {
	c := &Channel{
		params:   params,
		strategy: strategy,
		clk:      clk,
		interval: cfg.IdleInterval.Nanoseconds(),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}

	go c.idleLoop()
	return c
}

// SenderLimit 当前发送上限
func (c *Channel) SenderLimit() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sndLmt
}

// UpdateSenderPosition 更新发送位置（由发送循环推进）
func (c *Channel) UpdateSenderPosition(position int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if position > c.sndPos {
		c.sndPos = position
	}
}

// SignalEndOfStream 标记流已结束
func (c *Channel) SignalEndOfStream() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eos = true
}

// OnStatusMessage 处理一个状态消息数据报
//
// 解码失败的报文由协议层错误返回，不影响通道状态。
func (c *Channel) OnStatusMessage(datagram []byte) error {
	sm, err := proto.DecodeStatusMessage(datagram)
	if err != nil {
		return err
	}

	nowNs := c.clk.Now().UnixNano()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrChannelClosed
	}

	c.sndLmt = c.strategy.OnStatusMessage(sm, c.sndLmt, nowNs)
	return nil
}

// Close 停止空闲节拍并释放策略，可重复调用
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		<-c.loopDone

		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		if err := c.strategy.Close(); err != nil {
			log.Warn("策略释放失败",
				"stream", c.params.StreamID, "err", err)
		}
	})
	return nil
}

// ============================================================================
//                              空闲节拍
// ============================================================================

// idleLoop 周期性驱动策略的存活性重估
func (c *Channel) idleLoop() {
	defer close(c.loopDone)

	ticker := c.clk.Ticker(time.Duration(c.interval))
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.onIdleTick(now.UnixNano())
		}
	}
}

// onIdleTick 执行一次空闲节拍
func (c *Channel) onIdleTick(nowNs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.sndLmt = c.strategy.OnIdle(nowNs, c.sndLmt, c.sndPos, c.eos)
}
