package ez80

import "testing"

func TestLDIRCopiesAndRepeats(t *testing.T) {
	r := newZ80TestRig()
	r.core.HL.SetWord(0x1000)
	r.core.DE.SetWord(0x2000)
	r.core.BC.SetWord(0x0003)
	copy(r.bus.mem[0x1000:], []byte{0xAA, 0xBB, 0xCC})
	r.core.PC = 0x0100
	r.bus.mem[0x0100] = 0xED
	r.bus.mem[0x0101] = 0xB0
	r.core.prefetch = r.bus.mem[0x0100]

	r.core.executeInstruction()
	requireEqualU32(t, "PC rewound to repeat", r.core.PC, 0x0100)
	requireEqualU32(t, "BC after first byte", r.core.BC.Value(false), 2)

	r.core.executeInstruction()
	requireEqualU32(t, "BC after second byte", r.core.BC.Value(false), 1)

	r.core.executeInstruction()
	requireEqualU32(t, "BC zero, loop exits", r.core.BC.Value(false), 0)
	requireEqualU32(t, "PC past the instruction", r.core.PC, 0x0102)
	requireEqualU8(t, "dest[0]", r.bus.mem[0x2000], 0xAA)
	requireEqualU8(t, "dest[2]", r.bus.mem[0x2002], 0xCC)
}

func TestCPIRStopsOnMatch(t *testing.T) {
	r := newZ80TestRig()
	r.core.HL.SetWord(0x1000)
	r.core.BC.SetWord(0x0005)
	r.core.SetA(0x42)
	copy(r.bus.mem[0x1000:], []byte{0x01, 0x02, 0x42, 0x03, 0x04})
	r.core.PC = 0
	r.bus.mem[0] = 0xED
	r.bus.mem[1] = 0xB1
	r.core.prefetch = r.bus.mem[0]

	for i := 0; i < 3; i++ {
		r.core.executeInstruction()
	}

	requireTrue(t, "Z (match found)", r.core.Flag(FlagZ))
	requireEqualU32(t, "HL advanced past the match", r.core.HL.Value(false), 0x1003)
	requireEqualU32(t, "BC decremented three times", r.core.BC.Value(false), 2)
}

func TestOTIRWritesPortsAndDecrementsB(t *testing.T) {
	r := newZ80TestRig()
	r.core.HL.SetWord(0x1000)
	r.core.BC.SetWord(0x0203) // B=2, C=3 (port)
	copy(r.bus.mem[0x1000:], []byte{0x11, 0x22})
	r.core.PC = 0
	r.bus.mem[0] = 0xED
	r.bus.mem[1] = 0xB3
	r.core.prefetch = r.bus.mem[0]

	r.core.executeInstruction()
	r.core.executeInstruction()

	requireEqualU8(t, "B reached zero", r.core.BC.High(), 0x00)
	requireTrue(t, "Z", r.core.Flag(FlagZ))
}

// TestINIRXAddressesThroughDE exercises the eZ80-only DE-addressed input
// block extra: it must not touch HL at all.
func TestINIRXAddressesThroughDE(t *testing.T) {
	r := newZ80TestRig()
	r.core.DE.SetWord(0x3000)
	r.core.HL.SetWord(0x9999)
	r.core.BC.SetWord(0x0002)
	r.bus.ports[r.core.BC.Word()] = 0x5A
	r.core.PC = 0
	r.bus.mem[0] = 0xED
	r.bus.mem[1] = 0xD0
	r.core.prefetch = r.bus.mem[0]

	r.core.executeInstruction()
	r.core.executeInstruction()

	requireEqualU32(t, "HL untouched", r.core.HL.Value(false), 0x9999)
	requireEqualU32(t, "DE advanced twice", r.core.DE.Value(false), 0x3002)
	requireEqualU32(t, "BC drained", r.core.BC.Value(false), 0)
}
