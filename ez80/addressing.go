package ez80

// Register-index tables from spec.md §4.4, with z/p as the classic Z80
// opcode-partition names (x=opcode>>6, y=(opcode>>3)&7, z=opcode&7,
// p=y>>1, q=y&1).

// indexReg returns the index register selected by the current Prefix, or
// nil if Prefix is PrefixNone.
func (c *Core) indexReg() *reg24 {
	switch c.Prefix {
	case PrefixDD:
		return &c.IX
	case PrefixFD:
		return &c.IY
	default:
		return nil
	}
}

// indexAddress is cpu_index_address(): HL when no prefix is active,
// otherwise the selected index register plus a fetched signed displacement,
// masked to the current data width (spec.md §4.4).
func (c *Core) indexAddress() uint32 {
	if ix := c.indexReg(); ix != nil {
		d := int32(c.fetchOffset())
		return mask(uint32(int32(ix.Value(c.L))+d), c.L)
	}
	return c.HL.Value(c.L)
}

// readReg8/writeReg8 resolve r[z] with index substitution: codes 4/5 read
// H/L or IXh/IXl/IYh/IYl depending on Prefix, and code 6 is the
// HL/(IX+d)/(IY+d) memory operand. Callers that perform a read-modify-write
// on code 6 must NOT call both of these independently when Prefix != 0 —
// each call to indexAddress() consumes a displacement byte from the
// instruction stream. Use indexAddress() once and go through memRead/
// memWrite directly instead (see ops_load.go / ops_cb.go).
func (c *Core) readReg8(z byte) byte {
	switch z {
	case 0:
		return c.BC.High()
	case 1:
		return c.BC.Low()
	case 2:
		return c.DE.High()
	case 3:
		return c.DE.Low()
	case 4:
		if ix := c.indexReg(); ix != nil {
			return ix.High()
		}
		return c.HL.High()
	case 5:
		if ix := c.indexReg(); ix != nil {
			return ix.Low()
		}
		return c.HL.Low()
	case 6:
		return c.memRead(c.indexAddress())
	case 7:
		return c.A()
	}
	panic("ez80: r[z] out of range")
}

func (c *Core) writeReg8(z byte, v byte) {
	switch z {
	case 0:
		c.BC.SetHigh(v)
	case 1:
		c.BC.SetLow(v)
	case 2:
		c.DE.SetHigh(v)
	case 3:
		c.DE.SetLow(v)
	case 4:
		if ix := c.indexReg(); ix != nil {
			ix.SetHigh(v)
			return
		}
		c.HL.SetHigh(v)
	case 5:
		if ix := c.indexReg(); ix != nil {
			ix.SetLow(v)
			return
		}
		c.HL.SetLow(v)
	case 6:
		c.memWrite(c.indexAddress(), v)
	case 7:
		c.SetA(v)
	default:
		panic("ez80: r[z] out of range")
	}
}

// readReg8Plain/writeReg8Plain never substitute the index register: code 6
// reads/writes the real (HL), and 4/5 are the real H/L. This is the "clear
// PREFIX around the (HL) side of the transfer" rule from spec.md §4.4 —
// used for the *other* operand of an LD r,r' whose memory side has already
// been resolved through indexAddress().
func (c *Core) readReg8Plain(z byte) byte {
	switch z {
	case 0:
		return c.BC.High()
	case 1:
		return c.BC.Low()
	case 2:
		return c.DE.High()
	case 3:
		return c.DE.Low()
	case 4:
		return c.HL.High()
	case 5:
		return c.HL.Low()
	case 6:
		return c.memRead(c.HL.Value(c.L))
	case 7:
		return c.A()
	}
	panic("ez80: r[z] out of range")
}

func (c *Core) writeReg8Plain(z byte, v byte) {
	switch z {
	case 0:
		c.BC.SetHigh(v)
	case 1:
		c.BC.SetLow(v)
	case 2:
		c.DE.SetHigh(v)
	case 3:
		c.DE.SetLow(v)
	case 4:
		c.HL.SetHigh(v)
	case 5:
		c.HL.SetLow(v)
	case 6:
		c.memWrite(c.HL.Value(c.L), v)
	case 7:
		c.SetA(v)
	default:
		panic("ez80: r[z] out of range")
	}
}

// rpReg returns rp[p]: BC, DE, HL/IX/IY, SP.
func (c *Core) rpReg(p byte) *reg24 {
	switch p {
	case 0:
		return &c.BC
	case 1:
		return &c.DE
	case 2:
		if ix := c.indexReg(); ix != nil {
			return ix
		}
		return &c.HL
	case 3:
		return &c.SP
	}
	panic("ez80: rp[p] out of range")
}

// rp2Reg returns rp2[p]: BC, DE, HL/IX/IY, AF.
func (c *Core) rp2Reg(p byte) *reg24 {
	if p == 3 {
		return &c.AF
	}
	return c.rpReg(p)
}

// rp3Reg returns rp3[p]: BC, DE, HL, IX/IY (p=3 is always an index
// register: the one Prefix selects, or IX when Prefix is none). Used by
// LEA rp3,IX/IY in ops_ed.go and by the DD/FD-prefixed x=0 z=7
// LD rp3,(IX/IY+d) / LD (IX/IY+d),rp3 family in decode.go.
func (c *Core) rp3Reg(p byte) *reg24 {
	switch p {
	case 0:
		return &c.BC
	case 1:
		return &c.DE
	case 2:
		return &c.HL
	case 3:
		if ix := c.indexReg(); ix != nil {
			return ix
		}
		return &c.IX
	}
	panic("ez80: rp3[p] out of range")
}

// cc evaluates cc[y]: NZ,Z,NC,C,PO,PE,P,M.
func (c *Core) cc(y byte) bool {
	switch y {
	case 0:
		return !c.Flag(FlagZ)
	case 1:
		return c.Flag(FlagZ)
	case 2:
		return !c.Flag(FlagC)
	case 3:
		return c.Flag(FlagC)
	case 4:
		return !c.Flag(FlagPV)
	case 5:
		return c.Flag(FlagPV)
	case 6:
		return !c.Flag(FlagS)
	case 7:
		return c.Flag(FlagS)
	}
	panic("ez80: cc[y] out of range")
}

// dataWidth reports L, the current instruction's data width.
func (c *Core) dataWidth() bool { return c.L }

// longDataFrame is used for CALL/RET frame shaping (spec.md §4.5):
// IL (instruction fetch is long) OR (L AND NOT ADL).
func (c *Core) longDataFrame() bool {
	return c.IL || (c.L && !c.ADL)
}
