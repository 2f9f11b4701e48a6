package sender

import (
	"fmt"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-mcast/internal/config"
	"github.com/dep2p/go-mcast/internal/core/flowcontrol"
	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
	"github.com/dep2p/go-mcast/pkg/types"
)

// ============================================================================
//                              Factory
// ============================================================================

// Factory 发送通道工厂
//
// 通道建立阶段完成流控策略的选择与构造：配置错误在此处
// 快速失败，通道不会被建立。
type Factory struct {
	cfg      *config.Config
	registry *flowcontrol.Registry
	clk      clock.Clock
}

// NewFactory 创建发送通道工厂
func NewFactory(cfg *config.Config, registry *flowcontrol.Registry, clk clock.Clock) *Factory {
	return &Factory{
		cfg:      cfg,
		registry: registry,
		clk:      clk,
	}
}

// NewChannel 为一个出站流建立发送通道
//
// 流控配置非法或策略名无法解析时返回错误，不产生任何通道。
func (f *Factory) NewChannel(params fcif.ChannelParams) (*Channel, error) {
	if err := types.CheckTermLength(params.TermBufferCapacity); err != nil {
		return nil, fmt.Errorf("sender channel setup: %w", err)
	}

	fallback, err := f.registry.Lookup(f.defaultStrategyName(params.Channel))
	if err != nil {
		return nil, fmt.Errorf("sender channel setup: %w", err)
	}

	strategy, err := f.registry.Select(params, fallback)
	if err != nil {
		return nil, fmt.Errorf("sender channel setup: %w", err)
	}

	log.Debug("发送通道已建立",
		"stream", params.StreamID,
		"registration", params.RegistrationID,
		"fc", params.Channel.FlowControl)

	return newChannel(f.cfg.Sender, params, strategy, f.clk), nil
}

// defaultStrategyName 按通道类型取默认策略名
func (f *Factory) defaultStrategyName(ch types.ChannelDescriptor) string {
	if ch.IsMulticast {
		return f.cfg.FlowControl.DefaultMulticastStrategy
	}
	return f.cfg.FlowControl.DefaultUnicastStrategy
}
