package ez80

import "testing"

// TestDJNZLoop is scenario 1: DJNZ must decrement B as a plain 8-bit counter
// and branch back while nonzero, then fall through once B reaches zero.
func TestDJNZLoop(t *testing.T) {
	r := newZ80TestRig()
	r.core.BC.SetHigh(0x02)
	r.bus.mem[0x100] = 0x10 // DJNZ opcode, already consumed
	r.bus.mem[0x101] = 0xFE // displacement -2, branches back onto the DJNZ itself
	r.core.PC = 0x101
	r.core.prefetch = r.bus.mem[0x101]

	r.core.opDJNZ()
	requireEqualU8(t, "B after first", r.core.BC.High(), 0x01)
	requireEqualU32(t, "PC branched back", r.core.PC, 0x100)

	r.core.PC = 0x101 // the DJNZ opcode at 0x100 consumed again
	r.core.prefetch = r.bus.mem[0x101]
	r.core.opDJNZ()
	requireEqualU8(t, "B after second", r.core.BC.High(), 0x00)
	requireEqualU32(t, "PC fell through", r.core.PC, 0x102)
}

func TestJRUnconditional(t *testing.T) {
	r := newZ80TestRig()
	r.core.PC = 0x0010
	r.bus.mem[0x0010] = 0x05
	r.core.prefetch = r.bus.mem[0x0010]
	r.core.opJR()
	requireEqualU32(t, "PC", r.core.PC, 0x0016)
}

func TestCallAndPlainReturnSameMode(t *testing.T) {
	r := newZ80TestRig()
	r.core.SP.SetWord(0xFFF0)
	r.core.PC = 0x0300
	r.bus.mem[0x0300] = 0x00
	r.bus.mem[0x0301] = 0x40
	r.core.prefetch = r.bus.mem[0x0300]

	r.core.opCALL()
	requireEqualU32(t, "PC after CALL", r.core.PC, 0x4000)

	r.core.opRET()
	requireEqualU32(t, "PC after RET", r.core.PC, 0x0302)
	requireEqualU32(t, "SP restored", r.core.SP.Value(false), 0xFFF0)
}

// TestMixedModeCallAcrossADL is scenario 4 generalized to a .LIL-suffixed
// CALL issued from Z80 mode (ADL=0): the active suffix (not raw ADL) is
// what triggers the tagged mixed frame, so both the CALL and its matching
// RET must execute under the same suffix for the frame to unwind
// symmetrically (spec.md §4.5 "RET is symmetric... if SUFFIX is set").
func TestMixedModeCallAcrossADL(t *testing.T) {
	r := newZ80TestRig()
	r.core.ADL = false
	r.core.L = true
	r.core.IL = true // simulates a .LIL-suffixed CALL from Z80 mode
	r.core.Suffix = suffixLIL
	r.core.SP.SetLong(0xFFFFF0)
	r.core.PC = 0x000300
	r.bus.mem[0x000300] = 0x00
	r.bus.mem[0x000301] = 0x00
	r.bus.mem[0x000302] = 0x40
	r.core.prefetch = r.bus.mem[0x000300]

	r.core.opCALL()
	requireTrue(t, "callee enters ADL", r.core.ADL)
	requireEqualU32(t, "PC at target", r.core.PC, 0x400000)

	// The matching RET is itself .LIL-suffixed so it computes the same
	// frame width as the CALL that pushed it.
	r.core.Suffix = suffixLIL
	r.core.L = true
	r.core.IL = true
	r.core.opRET()
	requireFalse(t, "caller ADL restored", r.core.ADL)
	requireEqualU32(t, "PC back at return address", r.core.PC, 0x000303)
	requireEqualU32(t, "SP fully unwound", r.core.SP.Value(true), 0xFFFFF0)
}

// TestMixedModeCallUnderSISDoesNotPushPCU is spec.md §8 scenario 4 exactly:
// a CALL preceded by SIS (L=0, IL=0) while ADL=1 must push PCL/PCH onto
// SPS (the short pointer), must NOT push a PCU byte, and must tag the
// frame with the caller's ADL.
func TestMixedModeCallUnderSISDoesNotPushPCU(t *testing.T) {
	r := newZ80TestRig()
	r.core.ADL = true
	r.core.L = false
	r.core.IL = false
	r.core.Suffix = suffixSIS
	r.core.SP.SetLong(0xFFFFF0) // SPS view is 0xFFF0, SPL view is 0xFFFFF0
	r.core.PC = 0x000300
	r.bus.mem[0x000300] = 0x00 // operand lo: 2-byte CALL nn since IL=0
	r.bus.mem[0x000301] = 0x40 // operand hi -> target 0x4000
	r.core.prefetch = r.bus.mem[0x000300]

	r.core.opCALL()

	requireEqualU32(t, "PC at target", r.core.PC, 0x4000)
	// Tag is pushed last onto SPL. SPS is the low word of the same SP
	// register, so the two SPS pushes already lowered SPL to 0xFFFFEE and
	// the tag lands one byte below that.
	requireEqualU8(t, "tag encodes ADL=1, MADL=0", r.bus.mem[0xFFFFED], 0x01)
	// PCH/PCL were pushed onto SPS (16-bit pointer, no PCU), not SPL.
	requireEqualU8(t, "return low byte on SPS", r.bus.mem[0x00FFEE], 0x02)
	requireEqualU8(t, "return high byte on SPS", r.bus.mem[0x00FFEF], 0x03)
}

func TestRSTPushesReturnAddress(t *testing.T) {
	r := newZ80TestRig()
	r.core.SP.SetWord(0xFFF0)
	r.core.PC = 0x0123
	r.core.opRST(5)
	requireEqualU32(t, "PC at vector", r.core.PC, 0x0028)
	popped := r.core.pop()
	requireEqualU32(t, "return address on stack", popped, 0x0123)
}

func TestConditionalJumpNotTakenRefillsPrefetch(t *testing.T) {
	r := newZ80TestRig()
	r.core.SetF(0) // Z clear
	r.core.PC = 0x0010
	r.bus.mem[0x0010] = 0x00
	r.bus.mem[0x0011] = 0x40
	r.bus.mem[0x0012] = 0xC9 // RET, the next real opcode
	r.core.prefetch = r.bus.mem[0x0010]

	r.core.opJPCC(1) // JP Z,nn -- not taken since Z clear
	requireEqualU32(t, "PC past operand", r.core.PC, 0x0012)
	requireEqualU8(t, "prefetch refilled", r.core.prefetch, 0xC9)
}
