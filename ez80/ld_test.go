package ez80

import "testing"

func TestLDRegRegPlain(t *testing.T) {
	r := newZ80TestRig()
	r.core.BC.SetHigh(0x42)
	r.core.opLDRegReg(7, 0) // LD A,B
	requireEqualU8(t, "A", r.core.A(), 0x42)
}

func TestLDRegImmToMemoryHL(t *testing.T) {
	r := newZ80TestRig()
	r.core.HL.SetWord(0x4000)
	r.core.PC = 0
	r.bus.mem[0] = 0x99
	r.core.prefetch = r.bus.mem[0]

	r.core.opLDRegImm(6) // LD (HL),0x99

	requireEqualU8(t, "(HL)", r.bus.mem[0x4000], 0x99)
	requireEqualU32(t, "PC advanced by one immediate byte", r.core.PC, 1)
}

// TestLDRegRegIndexSubstitution exercises code 4/5 substitution under a DD
// prefix: LD B,IXh must read the real IX high byte, not H.
func TestLDRegRegIndexSubstitution(t *testing.T) {
	r := newZ80TestRig()
	r.core.HL.SetHigh(0x11)
	r.core.IX.SetHigh(0x22)
	r.core.Prefix = PrefixDD
	r.core.opLDRegReg(0, 4) // LD B,IXh
	requireEqualU8(t, "B", r.core.BC.High(), 0x22)
}

// TestLDHIXdSuppressesSubstitutionOnRegisterSide is the "(HL)-side
// suppression" rule: LD H,(IX+d) writes the real H register, not IXh, even
// though Prefix is active for the memory-side address computation.
func TestLDHIXdSuppressesSubstitutionOnRegisterSide(t *testing.T) {
	r := newZ80TestRig()
	r.core.IX.SetWord(0x5000)
	r.bus.mem[0x5005] = 0x77
	r.core.PC = 0
	r.bus.mem[0] = 0x05 // displacement byte, consumed by indexAddress()
	r.core.prefetch = r.bus.mem[0]
	r.core.Prefix = PrefixDD

	r.core.opLDRegReg(4, 6) // LD H,(IX+d)

	requireEqualU8(t, "H", r.core.HL.High(), 0x77)
	requireEqualU8(t, "IXh unchanged", r.core.IX.High(), 0x50)
}

func TestLDIndirectHLToNN(t *testing.T) {
	r := newZ80TestRig()
	r.core.HL.SetWord(0x1234)
	r.core.PC = 0
	r.bus.mem[0] = 0x00
	r.bus.mem[1] = 0x80
	r.core.prefetch = r.bus.mem[0]
	r.core.opLDIndirect(4) // LD (nn),HL
	requireEqualU8(t, "low", r.bus.mem[0x8000], 0x34)
	requireEqualU8(t, "high", r.bus.mem[0x8001], 0x12)
}

func TestOpINCRIndexedReadsAddressOnce(t *testing.T) {
	r := newZ80TestRig()
	r.core.IX.SetWord(0x2000)
	r.bus.mem[0x2003] = 0x0F
	r.core.PC = 0
	r.bus.mem[0] = 0x03
	r.core.prefetch = r.bus.mem[0]
	r.core.Prefix = PrefixDD

	r.core.opINCR(6) // INC (IX+3)

	requireEqualU8(t, "(IX+3)", r.bus.mem[0x2003], 0x10)
	requireEqualU32(t, "PC advanced exactly one displacement byte", r.core.PC, 1)
}

func TestPushPopRoundTrip(t *testing.T) {
	r := newZ80TestRig()
	r.core.SP.SetWord(0xFFF0)
	r.core.BC.SetWord(0xBEEF)
	r.core.opPUSH(0)
	r.core.BC.SetWord(0)
	r.core.opPOP(0)
	requireEqualU32(t, "BC", r.core.BC.Value(false), 0xBEEF)
	requireEqualU32(t, "SP restored", r.core.SP.Value(false), 0xFFF0)
}
