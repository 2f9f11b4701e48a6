package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
//                              term 长度校验测试
// ============================================================================

func TestCheckTermLength_Valid(t *testing.T) {
	for _, length := range []int32{TermMinLength, 128 * 1024, 16 * 1024 * 1024, TermMaxLength} {
		assert.NoError(t, CheckTermLength(length), "length=%d", length)
	}
}

func TestCheckTermLength_Invalid(t *testing.T) {
	for _, length := range []int32{0, 1024, TermMinLength - 1, TermMinLength + 1, 3 * 1024 * 1024} {
		assert.Error(t, CheckTermLength(length), "length=%d", length)
	}
}

// ============================================================================
//                              位置换算测试
// ============================================================================

func TestComputePosition_FirstTerm(t *testing.T) {
	require.NoError(t, CheckTermLength(64*1024))
	shift := PositionBitsToShift(64 * 1024)

	assert.Equal(t, int64(0), ComputePosition(100, 0, shift, 100))
	assert.Equal(t, int64(1024), ComputePosition(100, 1024, shift, 100))
}

func TestComputePosition_LaterTerms(t *testing.T) {
	shift := PositionBitsToShift(64 * 1024)

	// 第三个 term 中间
	pos := ComputePosition(102, 4096, shift, 100)
	assert.Equal(t, int64(2*64*1024+4096), pos)
}

// term id 回绕后位置必须连续递增
func TestComputePosition_TermIDWrap(t *testing.T) {
	shift := PositionBitsToShift(64 * 1024)
	initial := int32(math.MaxInt32 - 1)

	before := ComputePosition(math.MaxInt32, 0, shift, initial)
	after := ComputePosition(math.MinInt32, 0, shift, initial) // MaxInt32 + 1 回绕

	assert.Equal(t, int64(64*1024), before)
	assert.Equal(t, before+64*1024, after)
}

func TestPositionBitsToShift(t *testing.T) {
	assert.Equal(t, uint8(16), PositionBitsToShift(64*1024))
	assert.Equal(t, uint8(30), PositionBitsToShift(1024*1024*1024))
}
