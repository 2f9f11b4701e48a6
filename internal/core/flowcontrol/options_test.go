package flowcontrol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fcif "github.com/dep2p/go-mcast/pkg/interfaces/flowcontrol"
)

// ============================================================================
//                              解析测试
// ============================================================================

func TestParseOptions_NameOnly(t *testing.T) {
	opts, err := ParseOptions("max")
	require.NoError(t, err)

	assert.Equal(t, "max", opts.StrategyName)
	assert.False(t, opts.HasReceiverTag)
	assert.EqualValues(t, -1, opts.ReceiverTag)
	assert.Zero(t, opts.TimeoutNs)
}

func TestParseOptions_TagAndTimeout(t *testing.T) {
	opts, err := ParseOptions("min,g:7,t:2000000000")
	require.NoError(t, err)

	assert.Equal(t, "min", opts.StrategyName)
	assert.True(t, opts.HasReceiverTag)
	assert.EqualValues(t, 7, opts.ReceiverTag)
	assert.Equal(t, int64(2_000_000_000), opts.TimeoutNs)
}

func TestParseOptions_TimeoutSuffix(t *testing.T) {
	opts, err := ParseOptions("min,t:500ms")
	require.NoError(t, err)
	assert.Equal(t, int64(500_000_000), opts.TimeoutNs)
}

func TestParseOptions_NegativeTag(t *testing.T) {
	opts, err := ParseOptions("min,g:-3")
	require.NoError(t, err)
	assert.True(t, opts.HasReceiverTag)
	assert.EqualValues(t, -3, opts.ReceiverTag)
}

// 字段可重复，同一前缀以最后一次出现为准
func TestParseOptions_LastOccurrenceWins(t *testing.T) {
	opts, err := ParseOptions("min,g:1,t:1s,g:2,t:2s")
	require.NoError(t, err)

	assert.EqualValues(t, 2, opts.ReceiverTag)
	assert.Equal(t, int64(2_000_000_000), opts.TimeoutNs)
}

// 字段顺序无关
func TestParseOptions_FieldOrder(t *testing.T) {
	a, err := ParseOptions("min,g:7,t:1s")
	require.NoError(t, err)
	b, err := ParseOptions("min,t:1s,g:7")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// 策略名原样截取，不做校验
func TestParseOptions_NameVerbatim(t *testing.T) {
	opts, err := ParseOptions("bogus_strategy")
	require.NoError(t, err)
	assert.Equal(t, "bogus_strategy", opts.StrategyName)

	opts, err = ParseOptions("")
	require.NoError(t, err)
	assert.Equal(t, "", opts.StrategyName)
}

// ============================================================================
//                              错误路径
// ============================================================================

func TestParseOptions_UnrecognisedField(t *testing.T) {
	for _, s := range []string{"min,x:1", "min,gg", "min,", "min,:7", "min,g"} {
		_, err := ParseOptions(s)
		assert.ErrorIs(t, err, fcif.ErrInvalidOptions, "input=%q", s)
	}
}

func TestParseOptions_MissingOperand(t *testing.T) {
	_, err := ParseOptions("min,g:")
	assert.ErrorIs(t, err, fcif.ErrInvalidOptions)

	_, err = ParseOptions("min,t:")
	assert.ErrorIs(t, err, fcif.ErrInvalidOptions)
}

func TestParseOptions_InvalidValues(t *testing.T) {
	_, err := ParseOptions("min,g:abc")
	assert.ErrorIs(t, err, fcif.ErrInvalidOptions)

	// 超出 int32
	_, err = ParseOptions("min,g:3000000000")
	assert.ErrorIs(t, err, fcif.ErrInvalidOptions)

	_, err = ParseOptions("min,t:10m")
	assert.ErrorIs(t, err, fcif.ErrInvalidOptions)
}

// 值长度受定长暂存缓冲约束
func TestParseOptions_ValueLengthBound(t *testing.T) {
	atLimit := "min,t:" + strings.Repeat("0", 62) + "1" // 63 字节值
	_, err := ParseOptions(atLimit)
	assert.NoError(t, err)

	overLimit := "min,t:" + strings.Repeat("1", 64)
	_, err = ParseOptions(overLimit)
	assert.ErrorIs(t, err, fcif.ErrInvalidOptions)
}
