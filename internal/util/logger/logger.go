// Package logger 提供 go-mcast 的统一日志系统
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（MCAST_LOG_LEVEL, MCAST_LOG_FORMAT）
//   - 结构化日志
//
// 使用示例:
//
//	package flowcontrol
//
//	import "github.com/dep2p/go-mcast/internal/util/logger"
//
//	var log = logger.Logger("flowcontrol")
//
// 环境变量配置:
//
//	# 设置所有模块为 info，flowcontrol 模块为 debug
//	MCAST_LOG_LEVEL=flowcontrol=debug,info
//
//	# 使用 JSON 格式输出
//	MCAST_LOG_FORMAT=json
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// envConfig 环境变量配置缓存
	envConfig     *config
	envConfigOnce sync.Once
)

// Logger 获取指定子系统的 Logger
//
// 级别由 MCAST_LOG_LEVEL 决定，同一子系统多次调用返回同一实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := configFromEnv()
	l := slog.New(newHandler(subsystem, cfg.levelFor(subsystem), cfg.json))

	actual, _ := loggers.LoadOrStore(subsystem, l)
	return actual.(*slog.Logger)
}

// Discard 返回一个丢弃所有日志的 Logger
//
// 主要用于测试，避免日志输出干扰测试结果。
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// ============================================================================
//                              环境变量配置
// ============================================================================

// config 日志配置
type config struct {
	defaultLevel    slog.Level
	subsystemLevels map[string]slog.Level
	json            bool
}

// levelFor 获取指定子系统的日志级别
func (c *config) levelFor(subsystem string) slog.Level {
	if level, ok := c.subsystemLevels[subsystem]; ok {
		return level
	}
	return c.defaultLevel
}

// configFromEnv 从环境变量解析配置（进程内只解析一次）
func configFromEnv() *config {
	envConfigOnce.Do(func() {
		envConfig = parseEnv(os.Getenv("MCAST_LOG_LEVEL"), os.Getenv("MCAST_LOG_FORMAT"))
	})
	return envConfig
}

// parseEnv 解析环境变量值
//
// 级别格式: 子系统=级别,子系统=级别,默认级别
// 示例: flowcontrol=debug,sender=warn,info
func parseEnv(levelStr, formatStr string) *config {
	cfg := &config{
		defaultLevel:    slog.LevelInfo,
		subsystemLevels: make(map[string]slog.Level),
		json:            strings.EqualFold(formatStr, "json"),
	}

	for _, part := range strings.Split(levelStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if name, levelName, found := strings.Cut(part, "="); found {
			if level, ok := parseLevel(strings.TrimSpace(levelName)); ok {
				cfg.subsystemLevels[strings.TrimSpace(name)] = level
			}
		} else if level, ok := parseLevel(part); ok {
			cfg.defaultLevel = level
		}
	}

	return cfg
}

// parseLevel 解析级别名称
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
