// Package parse 提供配置值的共享解析语法
//
// 通道 URI 参数与环境变量共用同一套时长语法，
// 保证两处配置对同一写法的解释一致。
package parse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
//                              时长语法
// ============================================================================

// 时长写法为十进制数字加可选单位后缀：
//
//	1000000000  → 纳秒（无后缀）
//	100ns 20us 5ms 1s
//
// 与 time.ParseDuration 不同，无后缀的裸数字按纳秒解释，
// 且不支持小数和复合写法。

// ErrInvalidDuration 非法时长写法
var ErrInvalidDuration = errors.New("invalid duration")

// DurationNs 解析时长写法，返回纳秒数
func DurationNs(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidDuration)
	}

	digits := s
	multiplier := int64(1)

	switch {
	case strings.HasSuffix(s, "ns"):
		digits = s[:len(s)-2]
	case strings.HasSuffix(s, "us"):
		digits, multiplier = s[:len(s)-2], 1000
	case strings.HasSuffix(s, "ms"):
		digits, multiplier = s[:len(s)-2], 1000*1000
	case strings.HasSuffix(s, "s"):
		digits, multiplier = s[:len(s)-1], 1000*1000*1000
	}

	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	if value > uint64(math.MaxInt64)/uint64(multiplier) {
		return 0, fmt.Errorf("%w: %q overflows int64 nanoseconds", ErrInvalidDuration, s)
	}

	return int64(value) * multiplier, nil
}
