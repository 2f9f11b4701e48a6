// Package config 提供 go-mcast 发送侧的配置管理层
//
// config 包负责：
// - 定义内部配置结构
// - 提供默认值
// - 配置校验
package config

import (
	"fmt"
	"time"
)

// ============================================================================
//                              Config
// ============================================================================

// Config 发送侧内部配置结构
type Config struct {
	// FlowControl 流控配置
	FlowControl FlowControlConfig

	// Sender 发送通道配置
	Sender SenderConfig
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		FlowControl: DefaultFlowControlConfig(),
		Sender:      DefaultSenderConfig(),
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if err := c.FlowControl.Validate(); err != nil {
		return err
	}
	return c.Sender.Validate()
}

// ============================================================================
//                              流控配置
// ============================================================================

// FlowControlConfig 流控配置
type FlowControlConfig struct {
	// DefaultUnicastStrategy 单播通道未配置 fc 参数时使用的策略名
	DefaultUnicastStrategy string

	// DefaultMulticastStrategy 多播通道未配置 fc 参数时使用的策略名
	DefaultMulticastStrategy string

	// ReceiverTimeout 接收方静默判定超时
	//
	// 为 0 时按策略族的环境变量默认值处理。
	ReceiverTimeout time.Duration
}

// DefaultFlowControlConfig 流控默认配置
func DefaultFlowControlConfig() FlowControlConfig {
	return FlowControlConfig{
		DefaultUnicastStrategy:   "unicast_max",
		DefaultMulticastStrategy: "multicast_max",
	}
}

// Validate 校验流控配置
func (c FlowControlConfig) Validate() error {
	if c.DefaultUnicastStrategy == "" {
		return fmt.Errorf("配置错误 [FlowControl.DefaultUnicastStrategy]: 不能为空")
	}
	if c.DefaultMulticastStrategy == "" {
		return fmt.Errorf("配置错误 [FlowControl.DefaultMulticastStrategy]: 不能为空")
	}
	if c.ReceiverTimeout < 0 {
		return fmt.Errorf("配置错误 [FlowControl.ReceiverTimeout]: 不能为负")
	}
	return nil
}

// ============================================================================
//                              发送通道配置
// ============================================================================

// SenderConfig 发送通道配置
type SenderConfig struct {
	// IdleInterval 空闲节拍周期，驱动流控的存活性重估
	IdleInterval time.Duration
}

// DefaultSenderConfig 发送通道默认配置
func DefaultSenderConfig() SenderConfig {
	return SenderConfig{
		IdleInterval: 10 * time.Millisecond,
	}
}

// Validate 校验发送通道配置
func (c SenderConfig) Validate() error {
	if c.IdleInterval <= 0 {
		return fmt.Errorf("配置错误 [Sender.IdleInterval]: 必须为正")
	}
	return nil
}
