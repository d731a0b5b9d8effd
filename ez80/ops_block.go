package ez80

// blockRepeatBack rewinds PC by the two ED-page opcode bytes (plus one more
// if a SIS/LIS/SIL/LIL suffix preceded them) and refills prefetch, so the
// repeating block forms (LDIR/CPIR/INIR/OTIR and friends) re-enter the
// scheduler at the same instruction on the next decode step rather than
// looping internally (spec.md §4.5: "reprime the prefetch to PC − 2 −
// SUFFIX"). When a suffix is in play it must be re-applied on the next
// pass too, since it governs every iteration of the repeat, not just the
// first.
func (c *Core) blockRepeatBack() {
	back := uint32(2)
	if c.Suffix != suffixNone {
		back++
		c.Suffix = suffixNone
	}
	c.prefetchAt(mask(c.PC-back, c.IL), c.ADL)
}

// blockLD implements LDI/LDD: (DE)<-(HL), HL/DE step by dir, BC--. The
// undefined X/Y bits come from the transferred byte plus A, a well-known
// real-hardware quirk rather than a copy of the prior F.
func (c *Core) blockLD(dir int32) {
	v := c.memRead(c.HL.Value(c.L))
	c.memWrite(c.DE.Value(c.L), v)
	c.HL.SetValue(mask(uint32(int32(c.HL.Value(c.L))+dir), c.L), c.L)
	c.DE.SetValue(mask(uint32(int32(c.DE.Value(c.L))+dir), c.L), c.L)
	c.BC.SetValue(mask(c.BC.Value(c.L)-1, c.L), c.L)

	f := c.F() & (FlagS | FlagZ | FlagC)
	if c.BC.Value(c.L) != 0 {
		f |= FlagPV
	}
	n := v + c.A()
	if n&0x02 != 0 {
		f |= FlagY
	}
	if n&0x08 != 0 {
		f |= FlagX
	}
	c.SetF(f)
}

func (c *Core) opLDI() { c.blockLD(1) }
func (c *Core) opLDD() { c.blockLD(-1) }

func (c *Core) opLDIR() {
	c.blockLD(1)
	if c.BC.Value(c.L) != 0 {
		c.blockRepeatBack()
	}
}

func (c *Core) opLDDR() {
	c.blockLD(-1)
	if c.BC.Value(c.L) != 0 {
		c.blockRepeatBack()
	}
}

// blockCP implements CPI/CPD: compares A against (HL), steps HL by dir,
// decrements BC, and leaves C untouched (a CP-family quirk).
func (c *Core) blockCP(dir int32) {
	v := c.memRead(c.HL.Value(c.L))
	a := c.A()
	result := a - v
	c.HL.SetValue(mask(uint32(int32(c.HL.Value(c.L))+dir), c.L), c.L)
	c.BC.SetValue(mask(c.BC.Value(c.L)-1, c.L), c.L)

	f := (c.F() & FlagC) | FlagN
	if halfCarrySub(a, v, 0) {
		f |= FlagH
	}
	if signByte(result) {
		f |= FlagS
	}
	if zeroByte(result) {
		f |= FlagZ
	}
	if c.BC.Value(c.L) != 0 {
		f |= FlagPV
	}
	n := result
	if f&FlagH != 0 {
		n--
	}
	if n&0x02 != 0 {
		f |= FlagY
	}
	if n&0x08 != 0 {
		f |= FlagX
	}
	c.SetF(f)
}

func (c *Core) opCPI() { c.blockCP(1) }
func (c *Core) opCPD() { c.blockCP(-1) }

func (c *Core) opCPIR() {
	c.blockCP(1)
	if c.BC.Value(c.L) != 0 && !c.Flag(FlagZ) {
		c.blockRepeatBack()
	}
}

func (c *Core) opCPDR() {
	c.blockCP(-1)
	if c.BC.Value(c.L) != 0 && !c.Flag(FlagZ) {
		c.blockRepeatBack()
	}
}

// blockIn implements INI/IND: reads from port (C), writes to (HL), steps HL
// by dir, decrements B (the full-width counter otherwise used by BC is not
// touched by the I/O block forms).
func (c *Core) blockIn(dir int32) {
	v := c.portRead(c.BC.Word())
	c.memWrite(c.HL.Value(c.L), v)
	c.HL.SetValue(mask(uint32(int32(c.HL.Value(c.L))+dir), c.L), c.L)
	c.BC.SetHigh(c.BC.High() - 1)

	f := FlagN
	if c.BC.High() == 0 {
		f |= FlagZ
	}
	c.SetF(undefBitsFrom(c.BC.High(), f))
}

func (c *Core) opINI() { c.blockIn(1) }
func (c *Core) opIND() { c.blockIn(-1) }

func (c *Core) opINIR() {
	c.blockIn(1)
	if c.BC.High() != 0 {
		c.blockRepeatBack()
	}
}

func (c *Core) opINDR() {
	c.blockIn(-1)
	if c.BC.High() != 0 {
		c.blockRepeatBack()
	}
}

// blockOut implements OUTI/OUTD: reads (HL), writes to port (C), steps HL by
// dir, decrements B.
func (c *Core) blockOut(dir int32) {
	v := c.memRead(c.HL.Value(c.L))
	c.HL.SetValue(mask(uint32(int32(c.HL.Value(c.L))+dir), c.L), c.L)
	c.BC.SetHigh(c.BC.High() - 1)
	c.portWrite(c.BC.Word(), v)

	f := FlagN
	if c.BC.High() == 0 {
		f |= FlagZ
	}
	c.SetF(undefBitsFrom(c.BC.High(), f))
}

func (c *Core) opOUTI() { c.blockOut(1) }
func (c *Core) opOUTD() { c.blockOut(-1) }

func (c *Core) opOTIR() {
	c.blockOut(1)
	if c.BC.High() != 0 {
		c.blockRepeatBack()
	}
}

func (c *Core) opOTDR() {
	c.blockOut(-1)
	if c.BC.High() != 0 {
		c.blockRepeatBack()
	}
}

// --- eZ80-only DE-addressed block I/O extras ---
//
// INIRX/INDRX/OTIRX/OTDRX are the eZ80 additions that address memory
// through DE instead of HL, letting a driver stream a fixed-size buffer
// without HL ever leaving its role as a length/scratch register. They
// repeat unconditionally for the full BC count (not gated on B==0 per
// transfer) and step DE by +-1 and BC down by one per byte, stopping when
// BC==0.
func (c *Core) blockInX(dir int32) {
	v := c.portRead(c.BC.Word())
	c.memWrite(c.DE.Value(c.L), v)
	c.DE.SetValue(mask(uint32(int32(c.DE.Value(c.L))+dir), c.L), c.L)
	c.BC.SetValue(mask(c.BC.Value(c.L)-1, c.L), c.L)
}

func (c *Core) blockOutX(dir int32) {
	v := c.memRead(c.DE.Value(c.L))
	c.DE.SetValue(mask(uint32(int32(c.DE.Value(c.L))+dir), c.L), c.L)
	c.BC.SetValue(mask(c.BC.Value(c.L)-1, c.L), c.L)
	c.portWrite(c.BC.Word(), v)
}

func (c *Core) opINIRX() {
	c.blockInX(1)
	if c.BC.Value(c.L) != 0 {
		c.blockRepeatBack()
	}
}

func (c *Core) opINDRX() {
	c.blockInX(-1)
	if c.BC.Value(c.L) != 0 {
		c.blockRepeatBack()
	}
}

func (c *Core) opOTIRX() {
	c.blockOutX(1)
	if c.BC.Value(c.L) != 0 {
		c.blockRepeatBack()
	}
}

func (c *Core) opOTDRX() {
	c.blockOutX(-1)
	if c.BC.Value(c.L) != 0 {
		c.blockRepeatBack()
	}
}
