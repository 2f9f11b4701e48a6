// Package sender 实现发送通道模块
//
// Sender 模块负责：
// - 通道建立时的流控策略装配（快速失败）
// - 状态消息与空闲节拍到策略的串行分发
// - 发送上限维护
package sender

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-mcast/internal/config"
	"github.com/dep2p/go-mcast/internal/core/flowcontrol"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 配置
	Config *config.Config

	// Registry 流控策略注册表
	Registry *flowcontrol.Registry

	// Clock 时钟源（可选，缺省使用系统时钟；测试注入 mock）
	Clock clock.Clock `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Factory 发送通道工厂
	Factory *Factory
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	if err := input.Config.Sender.Validate(); err != nil {
		return ModuleOutput{}, err
	}

	clk := input.Clock
	if clk == nil {
		clk = clock.New()
	}

	return ModuleOutput{
		Factory: NewFactory(input.Config, input.Registry, clk),
	}, nil
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("sender",
		fx.Provide(ProvideServices),
	)
}

// 模块元信息常量
const (
	// Name 模块名称
	Name = "sender"
	// Description 模块描述
	Description = "发送通道模块，装配流控策略并维护发送上限"
)
