package ez80

// callAddr pushes a return frame and jumps to addr. A mixed frame fires
// exactly when mixed is true: CALL/CALL cc/RST pass whether a
// SIS/LIS/SIL/LIL suffix is active on this instruction, and interrupt
// acknowledge in serviceInterrupts passes MADL. The frame shape is then:
// an optional PCU byte on SPL
// (only when L is long), the PCH/PCL pair on SPL or SPS per
// longDataFrame(), and finally a 1-byte tag (MADL<<1)|ADL on SPL -- pushed
// last so it is the first byte a matching RET pops. MADL latches the
// pre-call ADL and the callee always resumes in ADL mode. A plain call (no
// suffix) pushes a single 2-or-3-byte word sized by L, no tag, and never
// changes ADL.
func (c *Core) callAddr(addr uint32, mixed bool) {
	if mixed {
		if c.L {
			c.spPushByte(true, byte(c.PC>>16))
		}
		c.pushWord16(c.longDataFrame(), uint16(c.PC))
		tag := byte(0)
		if c.MADL {
			tag |= 2
		}
		if c.ADL {
			tag |= 1
		}
		c.spPushByte(true, tag)
		c.MADL = c.ADL
		c.prefetchAt(addr, true)
		return
	}
	c.pushWord(c.L, c.PC)
	c.prefetchAt(addr, c.ADL)
}

// doReturn is the matching half of callAddr: a RET executed under an active
// suffix pops the tag first, then the PCH/PCL pair from the same SPS/SPL
// choice longDataFrame() gives at this point, then an optional PCU byte
// when L is long (spec.md §4.5 "RET is symmetric"). Programs pair a
// suffixed CALL with an identically-suffixed RET so the two sides compute
// matching widths. A plain RET pops a single word sized by L and never
// touches ADL itself.
func (c *Core) doReturn() {
	if c.Suffix != suffixNone {
		tag := c.spPopByte(true)
		addr := uint32(c.popWord16(c.longDataFrame()))
		if c.L {
			up := c.spPopByte(true)
			addr |= uint32(up) << 16
		}
		c.MADL = tag&2 != 0
		c.prefetchAt(addr, tag&1 != 0)
		return
	}
	addr := c.popWord(c.L)
	c.prefetchAt(addr, c.ADL)
}

func (c *Core) opRST(y byte) {
	c.callAddr(uint32(y)*8, c.Suffix != suffixNone)
}

func (c *Core) opCALL() {
	addr := c.fetchWordNoPrefetch()
	c.callAddr(addr, c.Suffix != suffixNone)
}

func (c *Core) opCALLCC(y byte) {
	addr := c.fetchWordNoPrefetch()
	if c.cc(y) {
		c.callAddr(addr, c.Suffix != suffixNone)
		return
	}
	c.prefetchAt(c.PC, c.ADL)
}

func (c *Core) opRET() {
	c.doReturn()
}

func (c *Core) opRETCC(y byte) {
	if c.cc(y) {
		c.doReturn()
	}
}

// opRETN/opRETI both restore IEF1 from IEF2; the distinction between the two
// only matters to an external interrupt daisy-chain, which this core does
// not model.
func (c *Core) opRETN() {
	c.IEF1 = c.IEF2
	c.doReturn()
}

func (c *Core) opJPNN() {
	addr := c.fetchWordNoPrefetch()
	c.prefetchAt(addr, c.ADL)
}

func (c *Core) opJPCC(y byte) {
	addr := c.fetchWordNoPrefetch()
	if c.cc(y) {
		c.prefetchAt(addr, c.ADL)
		return
	}
	c.prefetchAt(c.PC, c.ADL)
}

// opJPHL is JP (HL)/(IX)/(IY): an address load, not a mode change.
func (c *Core) opJPHL() {
	c.prefetchAt(c.rpReg(2).Value(c.L), c.ADL)
}

func (c *Core) opJR() {
	d := int32(c.fetchOffset())
	addr := mask(uint32(int32(c.PC)+d), c.IL)
	c.prefetchAt(addr, c.ADL)
}

// opJRCC handles y=4..7: JR NZ/Z/NC/C,d. cc(y-4) lines up with the first
// four condition codes, the only ones JR's 3-bit y field can reach.
func (c *Core) opJRCC(y byte) {
	d := int32(c.fetchOffset())
	if c.cc(y - 4) {
		addr := mask(uint32(int32(c.PC)+d), c.IL)
		c.prefetchAt(addr, c.ADL)
		return
	}
}

// opDJNZ decrements B, always as a plain 8-bit counter regardless of ADL,
// and branches relative while B is nonzero.
func (c *Core) opDJNZ() {
	d := int32(c.fetchOffset())
	c.BC.SetHigh(c.BC.High() - 1)
	if c.BC.High() != 0 {
		addr := mask(uint32(int32(c.PC)+d), c.IL)
		c.prefetchAt(addr, c.ADL)
	}
}

func (c *Core) opDI() {
	c.IEF1 = false
	c.IEF2 = false
}

// opEI sets IEFWait (cpu.c:1035-1038's cpu.IEF_wait = 1), the same
// opcode-trap latch used elsewhere to suppress a pending-interrupt check for
// one instruction: serviceInterrupts only actually enables IEF1/IEF2 the
// NEXT time it runs, so the instruction immediately following EI always
// completes uninterrupted (spec.md §4.5/§4.6/§9).
func (c *Core) opEI() {
	c.IEFWait = true
}

// opHALT sets the Halted latch; the scheduler drains the remaining budget in
// one step while it is set, rather than re-fetching/re-executing HALT every
// cycle (spec.md §4.6).
func (c *Core) opHALT() {
	c.Halted = true
}
