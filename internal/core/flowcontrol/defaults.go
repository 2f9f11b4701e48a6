package flowcontrol

import (
	"os"
	"sync"

	"github.com/dep2p/go-mcast/internal/util/parse"
)

// ============================================================================
//                              进程级默认超时
// ============================================================================

// 每个策略族持有一个独立的惰性初始化默认超时：首次构造该族
// 策略时读取一次对应环境变量，此后只读，可被多个通道建立
// 线程并发访问。

// 环境变量名
const (
	// EnvMinReceiverTimeout Min 策略族默认超时
	EnvMinReceiverTimeout = "MCAST_MIN_FLOW_CONTROL_RECEIVER_TIMEOUT"

	// EnvTaggedReceiverTimeout Tagged 策略族默认超时
	EnvTaggedReceiverTimeout = "MCAST_TAGGED_FLOW_CONTROL_RECEIVER_TIMEOUT"
)

// MaxReceiverTimeoutNs 内置的接收方超时上限（2 秒）
//
// 环境变量未设置或不可解析时采用。
const MaxReceiverTimeoutNs = int64(2 * 1000 * 1000 * 1000)

var (
	minTimeoutOnce sync.Once
	minTimeoutNs   int64

	taggedTimeoutOnce sync.Once
	taggedTimeoutNs   int64
)

// minFamilyTimeoutNs Min 策略族的进程级默认超时
func minFamilyTimeoutNs() int64 {
	minTimeoutOnce.Do(func() {
		minTimeoutNs = timeoutFromEnv(EnvMinReceiverTimeout)
	})
	return minTimeoutNs
}

// taggedFamilyTimeoutNs Tagged 策略族的进程级默认超时
func taggedFamilyTimeoutNs() int64 {
	taggedTimeoutOnce.Do(func() {
		taggedTimeoutNs = timeoutFromEnv(EnvTaggedReceiverTimeout)
	})
	return taggedTimeoutNs
}

// timeoutFromEnv 读取环境变量超时，失败时回退内置上限
func timeoutFromEnv(name string) int64 {
	value := os.Getenv(name)
	if value == "" {
		return MaxReceiverTimeoutNs
	}

	timeoutNs, err := parse.DurationNs(value)
	if err != nil {
		log.Warn("接收方超时环境变量不可解析，使用内置默认值",
			"env", name, "value", value, "err", err)
		return MaxReceiverTimeoutNs
	}
	return timeoutNs
}
