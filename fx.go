package mcast

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-mcast/internal/config"
	"github.com/dep2p/go-mcast/internal/core/flowcontrol"
	"github.com/dep2p/go-mcast/internal/core/sender"
)

// ============================================================================
//                              Fx 应用装配
// ============================================================================

// Modules 返回发送侧子系统的全部 fx 模块
//
// 宿主进程（驱动/收发层）把它并入自己的 fx 应用即可获得
// 流控注册表与发送通道工厂。
func Modules() fx.Option {
	return fx.Options(
		flowcontrol.Module(),
		sender.Module(),
	)
}

// BuildApp 用给定配置构建独立的 fx 应用
//
// 配置为 nil 时使用默认配置。主要供测试与示例使用，
// 生产环境通常经 Modules 并入宿主应用。
func BuildApp(cfg *config.Config, opts ...fx.Option) *fx.App {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	return fx.New(
		fx.Provide(func() *config.Config { return cfg }),
		Modules(),

		// fx 自身的事件日志静默，业务日志走 internal/util/logger
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),

		fx.Options(opts...),
	)
}
