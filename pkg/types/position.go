package types

import (
	"errors"
	"fmt"
	"math/bits"
)

// ============================================================================
//                              流位置运算
// ============================================================================

// 流位置由 (term id, term offset) 对换算为线性字节偏移。
// term id 是 32 位回绕计数，以初始 term id 为原点做差值后左移
// term 长度对应的位数，因此线性位置在 term id 回绕时依然单调递增。

// term 缓冲区容量约束
const (
	// TermMinLength term 缓冲区最小长度（64 KB）
	TermMinLength = 64 * 1024

	// TermMaxLength term 缓冲区最大长度（1 GB）
	TermMaxLength = 1024 * 1024 * 1024
)

// ErrInvalidTermLength term 缓冲区长度非法
var ErrInvalidTermLength = errors.New("term length must be a power of 2 between 64KB and 1GB")

// CheckTermLength 校验 term 缓冲区长度
//
// 长度必须是 2 的幂，且位于 [TermMinLength, TermMaxLength] 区间内。
func CheckTermLength(termLength int32) error {
	if termLength < TermMinLength || termLength > TermMaxLength ||
		termLength&(termLength-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTermLength, termLength)
	}
	return nil
}

// PositionBitsToShift 返回位置换算的移位位数
//
// 即 log2(termLength)。调用方须先用 CheckTermLength 校验长度。
func PositionBitsToShift(termLength int32) uint8 {
	return uint8(bits.TrailingZeros32(uint32(termLength)))
}

// ComputePosition 由 (term id, term offset) 换算线性流位置
//
// term id 相对 initialTermID 的差值按 32 位回绕语义计算，
// 保证 term id 越过 int32 边界后位置仍然连续递增。
func ComputePosition(termID, termOffset int32, positionBitsToShift uint8, initialTermID int32) int64 {
	termCount := int64(termID - initialTermID) // int32 减法自然回绕
	return (termCount << positionBitsToShift) + int64(termOffset)
}
