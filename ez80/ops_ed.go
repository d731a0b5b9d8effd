package ez80

// execED is the ED page. Entry always cancels any pending DD/FD prefix
// (spec.md §4.5: "ED cancels PREFIX") since the index substitution never
// reaches into ED-page instructions.
func (c *Core) execED() {
	c.Prefix = PrefixNone
	op := c.fetchOpcodeByte()
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch {
	case op == 0xC3:
		c.opFlashErase()
		return
	case op == 0xC7:
		c.opLDIHL()
		return
	case op == 0xD7:
		c.opLDHLI()
		return
	case x == 1 && z == 0:
		c.opEDInC(y)
		return
	case x == 1 && z == 1:
		c.opEDOutC(y)
		return
	case x == 1 && z == 2 && q == 0:
		c.sbcWideHL(c.rpReg(p).Value(c.L))
		return
	case x == 1 && z == 2 && q == 1:
		c.adcWideHL(c.rpReg(p).Value(c.L))
		return
	case x == 1 && z == 3 && q == 0:
		addr := c.fetchWord()
		c.writeMemValue(addr, c.rpReg(p).Value(c.L), c.L)
		return
	case x == 1 && z == 3 && q == 1:
		addr := c.fetchWord()
		c.rpReg(p).SetValue(c.readMemValue(addr, c.L), c.L)
		return
	case x == 1 && z == 4:
		c.opEDExtra4(y, p)
		return
	case x == 1 && z == 5:
		c.opEDMisc5(y)
		return
	case x == 1 && z == 6:
		c.opIM(y)
		return
	case x == 1 && z == 7:
		c.opEDMisc(y)
		return
	case x == 0 && (z == 2 || z == 3):
		c.opLEARP3(z, p, q)
		return
	case x == 0 && z == 4:
		c.opTST(y)
		return
	case x == 2 && op >= 0xA0 && op <= 0xBF:
		c.execEDBlock(op)
		return
	case op == 0xD0:
		c.opINIRX()
		return
	case op == 0xD1:
		c.opINDRX()
		return
	case op == 0xD2:
		c.opOTIRX()
		return
	case op == 0xD3:
		c.opOTDRX()
		return
	default:
		// Unimplemented ED slot: trap as described in spec.md §4.6 rather
		// than abort -- IEF_wait gates the next pending-interrupt check so
		// a guest that single-steps over it still makes forward progress.
		c.IEFWait = true
	}
}

// opLEARP3 is LEA rp3[p], IX (z=2) / LEA rp3[p], IY (z=3): q=1 is an
// opcode trap (cpu.c:1430-1431), q=0 selects the index register by z
// (PrefixDD==2, PrefixFD==3 line up with z directly) before computing the
// displaced address.
func (c *Core) opLEARP3(z, p, q byte) {
	if q == 1 {
		c.IEFWait = true
		return
	}
	c.Prefix = Prefix(z)
	c.rp3Reg(p).SetValue(c.indexAddress(), c.L)
}

// opPEA pushes reg+d (d a fetched signed offset) without otherwise touching
// reg, per PEA IX+d / PEA IY+d (cpu.c:1574-1577, 1601-1604).
func (c *Core) opPEA(reg *reg24) {
	d := int32(c.fetchOffset())
	addr := mask(uint32(int32(reg.Long())+d), true)
	c.pushWord(c.L, addr)
}

// opEDInC/opEDOutC are IN r,(C)/OUT (C),r. y==6 is the undocumented
// "IN F,(C)"/"OUT (C),0" form: flags-only read, or a fixed zero write.
func (c *Core) opEDInC(y byte) {
	v := c.portRead(c.BC.Word())
	f := c.F() & FlagC
	if signByte(v) {
		f |= FlagS
	}
	if zeroByte(v) {
		f |= FlagZ
	}
	if parity8(v) {
		f |= FlagPV
	}
	c.SetF(undefBitsFrom(v, f))
	if y != 6 {
		c.writeReg8Plain(y, v)
	}
}

func (c *Core) opEDOutC(y byte) {
	var v byte
	if y != 6 {
		v = c.readReg8Plain(y)
	}
	c.portWrite(c.BC.Word(), v)
}

// opEDExtra4 is the x=1,z=4 column: q (y's low bit) picks MLT rp[p] on the
// odd y values; the even values dispatch by p (cpu.c:1515-1554): p=0 NEG,
// p=1 LEA IX,IY+d, p=2 TST A,n, p=3 TSTIO n.
func (c *Core) opEDExtra4(y, p byte) {
	if y&1 == 1 {
		c.opMLT(p)
		return
	}
	switch p {
	case 0:
		c.opNEG()
	case 1:
		c.opLEAIXFromIYd()
	case 2:
		c.opTSTN()
	case 3:
		c.opTSTIO()
	}
}

// opLEAIXFromIYd is LEA IX, IY+d (cpu.c:1527-1531): the displacement is
// always read off IY regardless of any DD/FD prefix in effect, since ED
// already cancelled it on entry to execED.
func (c *Core) opLEAIXFromIYd() {
	c.Prefix = PrefixFD
	c.IX.SetValue(c.indexAddress(), c.L)
}

// opTSTIO is TSTIO n (cpu.c:1539-1545): AND's the byte read from port C
// with a fetched immediate, flags-only.
func (c *Core) opTSTIO() {
	v := c.portRead(c.BC.Word()) & c.fetchByte()
	c.setTSTFlags(v)
}

func (c *Core) opNEG() {
	a := c.A()
	result := byte(0) - a
	f := byte(FlagN)
	if a != 0 {
		f |= FlagC
	}
	if halfCarrySub(0, a, 0) {
		f |= FlagH
	}
	if a == 0x80 {
		f |= FlagPV
	}
	if signByte(result) {
		f |= FlagS
	}
	if zeroByte(result) {
		f |= FlagZ
	}
	c.SetA(result)
	c.SetF(undefBitsFrom(result, f))
}

// opMLT multiplies the two halves of rp[p] as unsigned bytes into the whole
// 16-bit pair: MLT BC sets BC to B*C, and so on.
func (c *Core) opMLT(p byte) {
	r := c.rpReg(p)
	r.SetWord(uint16(r.High()) * uint16(r.Low()))
}

func (c *Core) opRETI() {
	c.IEF1 = c.IEF2
	c.doReturn()
}

// opEDMisc5 is the x=1,z=5 column (cpu.c:1556-1589): RETN/RETI at y=0/1,
// LEA IY,IX+d at y=2, PEA IX+d at y=4, LD MB,A at y=5, STMIX at y=7; y=3
// and y=6 are opcode traps.
func (c *Core) opEDMisc5(y byte) {
	switch y {
	case 0:
		c.opRETN()
	case 1:
		c.opRETI()
	case 2:
		c.Prefix = PrefixDD
		c.IY.SetValue(c.indexAddress(), c.L)
	case 4:
		c.opPEA(&c.IX)
	case 5:
		if c.ADL {
			c.MBASE = c.A()
		}
	case 7:
		c.MADL = true
	default:
		c.IEFWait = true
	}
}

// opIM is the x=1,z=6 column (cpu.c:1590-1616): y=0/2/3 set IM directly
// (the eZ80 IM3 vectored mode is y=3, not a repurposed duplicate slot);
// y=1 is an opcode trap; y=4 is PEA IY+d; y=5 is LD A,MB; y=6 is SLP (a
// no-op, spec.md §9); y=7 is RSMIX.
func (c *Core) opIM(y byte) {
	switch y {
	case 0, 2, 3:
		c.IM = y
	case 4:
		c.opPEA(&c.IY)
	case 5:
		c.SetA(c.MBASE)
	case 6:
		// SLP: no low-power state modeled, spec.md §9.
	case 7:
		c.MADL = false
	default:
		c.IEFWait = true
	}
}

// opEDMisc covers the x=1,z=7 column: LD I,A / LD R,A / LD A,I / LD A,R /
// RRD / RLD (cpu.c:1618-1670). LD I,A ORs A into I's top nibble with the
// low nibble cleared (cpu.c:1622: "I = A | (I & 0xF0)"): I's low nibble
// becomes A's low nibble and its top nibble becomes the OR of both top
// nibbles. LD A,I mirrors it back out of just the low nibble (cpu.c:1630:
// "A = I & 0x0F"). Anything past y=5 is an opcode trap.
func (c *Core) opEDMisc(y byte) {
	switch y {
	case 0:
		c.I = c.A() | (c.I & 0xF0)
	case 1:
		c.R = c.A()
	case 2:
		v := c.I & 0x0F
		c.SetA(v)
		c.setIAFlags(v)
	case 3:
		c.SetA(c.R)
		c.setIAFlags(c.R)
	case 4:
		c.opRRD()
	case 5:
		c.opRLD()
	default:
		c.IEFWait = true
	}
}

// setIAFlags is the common S/Z/H/PV/N update shared by LD A,I and LD A,R:
// PV carries IEF1 at the moment of the load (cpu.c:1632, 1639 both test
// cpu.IEF1, not IEF2 -- only RETN/RETI distinguish the two), H and N are
// cleared, S/Z read the loaded byte.
func (c *Core) setIAFlags(v byte) {
	f := c.F() & FlagC
	if signByte(v) {
		f |= FlagS
	}
	if zeroByte(v) {
		f |= FlagZ
	}
	if c.IEF1 {
		f |= FlagPV
	}
	c.SetF(undefBitsFrom(v, f))
}

// opRRD/opRLD rotate a nibble between A and (HL): RRD shifts (HL)'s low
// nibble into A's low nibble, A's old low nibble into (HL)'s high nibble,
// and (HL)'s old high nibble into (HL)'s low nibble.
func (c *Core) opRRD() {
	addr := c.HL.Value(c.L)
	m := c.memRead(addr)
	a := c.A()
	c.SetA((a & 0xF0) | (m & 0x0F))
	c.memWrite(addr, (a<<4)|(m>>4))
	c.finishRotateDigit()
}

func (c *Core) opRLD() {
	addr := c.HL.Value(c.L)
	m := c.memRead(addr)
	a := c.A()
	c.SetA((a & 0xF0) | (m >> 4))
	c.memWrite(addr, (m<<4)|(a&0x0F))
	c.finishRotateDigit()
}

func (c *Core) finishRotateDigit() {
	a := c.A()
	f := c.F() & FlagC
	if signByte(a) {
		f |= FlagS
	}
	if zeroByte(a) {
		f |= FlagZ
	}
	if parity8(a) {
		f |= FlagPV
	}
	c.SetF(undefBitsFrom(a, f))
}

// opTST is TST A,r[y]: AND's flag outcome without storing into A.
func (c *Core) opTST(y byte) {
	c.setTSTFlags(c.A() & c.readReg8(y))
}

func (c *Core) opTSTN() {
	c.setTSTFlags(c.A() & c.fetchByte())
}

// setTSTFlags is the S/Z/PV/H update shared by TST A,r[y] / TST A,n /
// TSTIO n: all three leave A untouched and always clear C, set H.
func (c *Core) setTSTFlags(result byte) {
	f := FlagH
	if signByte(result) {
		f |= FlagS
	}
	if zeroByte(result) {
		f |= FlagZ
	}
	if parity8(result) {
		f |= FlagPV
	}
	c.SetF(undefBitsFrom(result, f))
}

// execEDBlock dispatches the sixteen standard ED-page block instructions
// (0xA0-0xBF): bits 1:0 select LD/CP/IN/OUT, bit 3 selects decrement,
// and bit 4 selects the repeating form. Low-nibble values 4-7 and 0xC-0xF
// in this range are opcode traps.
func (c *Core) execEDBlock(op byte) {
	repeat := op&0x10 != 0
	dec := op&0x08 != 0
	switch op & 0x07 {
	case 0: // LDI/LDIR
		if dec {
			if repeat {
				c.opLDDR()
			} else {
				c.opLDD()
			}
		} else {
			if repeat {
				c.opLDIR()
			} else {
				c.opLDI()
			}
		}
	case 1: // CPI/CPIR
		if dec {
			if repeat {
				c.opCPDR()
			} else {
				c.opCPD()
			}
		} else {
			if repeat {
				c.opCPIR()
			} else {
				c.opCPI()
			}
		}
	case 2: // INI/INIR
		if dec {
			if repeat {
				c.opINDR()
			} else {
				c.opIND()
			}
		} else {
			if repeat {
				c.opINIR()
			} else {
				c.opINI()
			}
		}
	case 3: // OUTI/OTIR
		if dec {
			if repeat {
				c.opOTDR()
			} else {
				c.opOUTD()
			}
		} else {
			if repeat {
				c.opOTIR()
			} else {
				c.opOUTI()
			}
		}
	default:
		c.IEFWait = true
	}
}

// opFlashErase implements the ED C3 EE emulator extension: a fixed 3-byte
// sequence that, when EnableFlashErase is set and a FlashEraser is wired,
// erases the 16 KiB flash page containing HL (spec.md §4.5/§6: "zeros a
// 16 KiB Flash page at HL & ~0x3FFF"). Any other trailing byte, or no
// FlashEraser attached, behaves as an ordinary ED-page trap so a host that
// never opts in never observes anything but an unimplemented opcode.
func (c *Core) opFlashErase() {
	n := c.fetchByte()
	if n == 0xEE && c.EnableFlashErase && c.FlashEraser != nil {
		c.FlashEraser.EraseFlashPage(c.HL.Value(c.L) &^ 0x3FFF)
		return
	}
	c.IEFWait = true
}

// opLDIHL/opLDHLI are LD I,HL / LD HL,I (cpu.c:1704-1711, opcodes ED C7 /
// ED D7). cpu.c treats I as wide enough to hold HL's low 16 bits for this
// pair ("r->I = r->HL & 0xFFFF", "r->HL = r->I | (r->MBASE << 16)"), which
// does not fit spec.md §3's explicit single-byte I register: I here is
// truncated to HL's low byte on the way in, and zero-extended (with MBASE
// supplying the top byte, matching LD HL,I's own MBASE term) on the way
// out, rather than fabricating a 16-bit I just for these two opcodes.
func (c *Core) opLDIHL() {
	c.I = c.HL.Low()
}

func (c *Core) opLDHLI() {
	c.HL.SetValue(uint32(c.MBASE)<<16|uint32(c.I), c.L)
}
