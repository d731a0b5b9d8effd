package ez80

// Snapshot is a read-only view of architectural state for an external
// debugger or disassembler front-end (spec.md §6). It never aliases Core's
// internal fields, so a caller holding one cannot corrupt live state.
type Snapshot struct {
	AF, BC, DE, HL     uint32
	AF2, BC2, DE2, HL2 uint32
	IX, IY, SP         uint32
	PC                 uint32
	I, R, MBASE        byte
	ADL, MADL, L, IL   bool
	IEF1, IEF2         bool
	IM                 byte
	Halted             bool
	Prefix             Prefix
}

// Snapshot captures the current architectural state. Every register pair
// is reported as its full 24-bit Long() value, leaving width
// interpretation to the caller,
// since a debugger typically wants to see the whole register regardless of
// the instruction-level L/IL latches in effect.
func (c *Core) Snapshot() Snapshot {
	return Snapshot{
		AF:     c.AF.Long(),
		BC:     c.BC.Long(),
		DE:     c.DE.Long(),
		HL:     c.HL.Long(),
		AF2:    c.AF2.Long(),
		BC2:    c.BC2.Long(),
		DE2:    c.DE2.Long(),
		HL2:    c.HL2.Long(),
		IX:     c.IX.Long(),
		IY:     c.IY.Long(),
		SP:     c.SP.Long(),
		PC:     c.PC,
		I:      c.I,
		R:      c.R,
		MBASE:  c.MBASE,
		ADL:    c.ADL,
		MADL:   c.MADL,
		L:      c.L,
		IL:     c.IL,
		IEF1:   c.IEF1,
		IEF2:   c.IEF2,
		IM:     c.IM,
		Halted: c.Halted,
		Prefix: c.Prefix,
	}
}

// PeekOpcode returns the opcode byte at addr without disturbing the
// prefetch cache or R, for a disassembler that wants to look ahead of PC.
func (c *Core) PeekOpcode(addr uint32) byte {
	return c.Bus.MemRead(c.translate(addr, c.IL))
}

// PeekByte reads a data byte at addr under the current L width, for a
// debugger inspecting memory without side effects.
func (c *Core) PeekByte(addr uint32) byte {
	return c.Bus.MemRead(c.translate(addr, c.L))
}
