package flowcontrol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dep2p/go-mcast/internal/util/parse"
	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
	"github.com/dep2p/go-mcast/pkg/types"
)

// ============================================================================
//                              流控配置串
// ============================================================================

// 通道 URI 的 fc 参数为逗号分隔的配置串：
//
//	<策略名>(,g:<int32>)?(,t:<时长>)?
//
// 首字段为策略名，原样截取不做校验；其后每个字段必须是
// <前缀字符>:<值> 形式，当前识别 g（组标签）与 t（超时）。
// 字段可重复，同一前缀以最后一次出现为准。

// maxOptionValueLength 字段值的最大字节数（定长暂存缓冲约束）
const maxOptionValueLength = 63

// Options 解析后的流控配置
//
// 在通道建立时产生一次，此后不可变。
type Options struct {
	// StrategyName 策略名（首字段原样内容，可能为空）
	StrategyName string

	// TimeoutNs 每通道接收方超时，0 表示未配置
	TimeoutNs int64

	// HasReceiverTag 是否配置了组标签
	HasReceiverTag bool

	// ReceiverTag 组标签值，未配置时为 -1
	ReceiverTag types.ReceiverTag
}

// ParseOptions 解析流控配置串
//
// 调用方只在配置串存在时调用；策略名是否为空由选择器检查。
func ParseOptions(s string) (Options, error) {
	opts := Options{ReceiverTag: -1}

	fields := strings.Split(s, ",")
	opts.StrategyName = fields[0]

	for _, field := range fields[1:] {
		if len(field) < 3 || field[1] != ':' {
			return Options{}, fmt.Errorf(
				"%w: unrecognised field %q in %q", fcif.ErrInvalidOptions, field, s)
		}

		value := field[2:]
		if len(value) > maxOptionValueLength {
			return Options{}, fmt.Errorf(
				"%w: value too long (%d bytes, max %d) in field %q",
				fcif.ErrInvalidOptions, len(value), maxOptionValueLength, field)
		}

		switch field[0] {
		case 'g':
			tag, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return Options{}, fmt.Errorf(
					"%w: invalid group tag in field %q of %q", fcif.ErrInvalidOptions, field, s)
			}
			opts.HasReceiverTag = true
			opts.ReceiverTag = types.ReceiverTag(tag)

		case 't':
			timeoutNs, err := parse.DurationNs(value)
			if err != nil {
				return Options{}, fmt.Errorf(
					"%w: invalid timeout in field %q of %q", fcif.ErrInvalidOptions, field, s)
			}
			opts.TimeoutNs = timeoutNs

		default:
			return Options{}, fmt.Errorf(
				"%w: unrecognised field %q in %q", fcif.ErrInvalidOptions, field, s)
		}
	}

	return opts, nil
}
