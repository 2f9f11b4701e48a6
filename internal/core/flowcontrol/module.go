// Package flowcontrol 实现发送方流控模块
//
// 流控模块负责：
// - 接收方台账（存活跟踪、最小窗口右沿）
// - Max / Min / Tagged 三种限速策略
// - 流控配置串解析
// - 策略注册表与选择器
package flowcontrol

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-mcast/internal/config"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 配置
	Config *config.Config
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Registry 策略注册表
	Registry *Registry
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	if err := input.Config.FlowControl.Validate(); err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		Registry: NewRegistry(input.Config.FlowControl),
	}, nil
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("flowcontrol",
		fx.Provide(ProvideServices),
	)
}

// 模块元信息常量
const (
	// Name 模块名称
	Name = "flowcontrol"
	// Description 模块描述
	Description = "发送方流控模块，提供接收方跟踪与限速策略"
)
