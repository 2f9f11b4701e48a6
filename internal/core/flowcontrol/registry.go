package flowcontrol

import (
	"fmt"
	"sync"

	"github.com/dep2p/go-mcast/internal/config"
	"github.com/dep2p/go-mcast/internal/util/logger"
	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
)

// 包级别日志实例
var log = logger.Logger("flowcontrol")

// ============================================================================
//                              策略名
// ============================================================================

// 内置策略注册名
const (
	// StrategyUnicastMax 单播 Max 策略
	StrategyUnicastMax = "unicast_max"

	// StrategyMulticastMax 多播 Max 策略
	StrategyMulticastMax = "multicast_max"

	// StrategyMulticastMin 多播 Min 策略
	StrategyMulticastMin = "multicast_min"
)

// 配置串中的策略名
const (
	optionNameMax = "max"
	optionNameMin = "min"
)

// ============================================================================
//                              Registry
// ============================================================================

// Resolver 外部策略解析器
//
// 注册表查不到的策略名会交给解析器按同一名字再查一次，
// 返回构造器与是否命中。解析方式（插件、代码生成等）不在
// 本包约定范围内。
type Resolver func(name string) (fcif.Supplier, bool)

// Registry 策略名到构造器的注册表
//
// 内置条目在构造时登记，启动后也可追加；所有通道建立线程
// 共享一个注册表实例。
type Registry struct {
	mu        sync.RWMutex
	suppliers map[string]fcif.Supplier
	resolver  Resolver

	cfg config.FlowControlConfig
}

// NewRegistry 创建注册表并登记内置策略
func NewRegistry(cfg config.FlowControlConfig) *Registry {
	r := &Registry{
		suppliers: make(map[string]fcif.Supplier),
		cfg:       cfg,
	}

	r.Register(StrategyUnicastMax, NewMaxStrategy)
	r.Register(StrategyMulticastMax, NewMaxStrategy)
	r.Register(StrategyMulticastMin, r.newMin)

	return r
}

// Register 登记一个策略构造器，同名覆盖
func (r *Registry) Register(name string, supplier fcif.Supplier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[name] = supplier
}

// SetResolver 安装外部策略解析器
func (r *Registry) SetResolver(resolver Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolver = resolver
}

// Lookup 按名字查找策略构造器
//
// 内置条目未命中时委托外部解析器；两边都未命中返回
// ErrUnknownStrategy。
func (r *Registry) Lookup(name string) (fcif.Supplier, error) {
	r.mu.RLock()
	supplier, ok := r.suppliers[name]
	resolver := r.resolver
	r.mu.RUnlock()

	if ok {
		return supplier, nil
	}

	if resolver != nil {
		if supplier, ok := resolver(name); ok {
			return supplier, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", fcif.ErrUnknownStrategy, name)
}

// ============================================================================
//                              策略选择
// ============================================================================

// Select 按通道配置选择并构造策略
//
// 这是配置到策略变体的唯一决策点：
//
//	无 fc 配置串        → fallback 构造器（策略默认值）
//	名字 "max"          → Max
//	名字 "min" 无组标签 → Min
//	名字 "min" 有组标签 → Tagged
//	名字缺失或其他      → 配置错误
func (r *Registry) Select(params fcif.ChannelParams, fallback fcif.Supplier) (fcif.Strategy, error) {
	if !params.Channel.HasFlowControl() {
		return fallback(params)
	}

	opts, err := ParseOptions(params.Channel.FlowControl)
	if err != nil {
		return nil, err
	}

	switch opts.StrategyName {
	case optionNameMax:
		return NewMaxStrategy(params)

	case optionNameMin:
		if opts.HasReceiverTag {
			return newTaggedStrategy(params, opts.ReceiverTag, r.taggedTimeoutNs(opts)), nil
		}
		return newMinStrategy(params, r.minTimeoutNs()), nil

	case "":
		return nil, fmt.Errorf("%w: URI %q", fcif.ErrStrategyNameMissing, params.Channel.URI)

	default:
		return nil, fmt.Errorf("%w: invalid strategy name %q from URI %q",
			fcif.ErrInvalidOptions, opts.StrategyName, params.Channel.URI)
	}
}

// newMin 内置 multicast_min 构造器
func (r *Registry) newMin(params fcif.ChannelParams) (fcif.Strategy, error) {
	return newMinStrategy(params, r.minTimeoutNs()), nil
}

// minTimeoutNs Min 族超时：配置优先，其次进程级默认
func (r *Registry) minTimeoutNs() int64 {
	if r.cfg.ReceiverTimeout > 0 {
		return r.cfg.ReceiverTimeout.Nanoseconds()
	}
	return minFamilyTimeoutNs()
}

// taggedTimeoutNs Tagged 族超时：每通道配置优先，其次全局配置，
// 最后进程级默认
func (r *Registry) taggedTimeoutNs(opts Options) int64 {
	if opts.TimeoutNs != 0 {
		return opts.TimeoutNs
	}
	if r.cfg.ReceiverTimeout > 0 {
		return r.cfg.ReceiverTimeout.Nanoseconds()
	}
	return taggedFamilyTimeoutNs()
}
