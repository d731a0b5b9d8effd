package ez80

// suffixFor reports whether opcode is one of the four "LD r,r" diagonal
// slots the eZ80 repurposes as an ADL width override for the next real
// instruction (spec.md §4.5): .SIS=0x40, .LIS=0x49, .SIL=0x52, .LIL=0x5B.
// The other diagonal no-ops (0x64, 0x6D, 0x7F) and HALT (0x76) are left as
// ordinary opcodes.
func suffixFor(op byte) (suffixKind, bool) {
	switch op {
	case 0x40:
		return suffixSIS, true
	case 0x49:
		return suffixLIS, true
	case 0x52:
		return suffixSIL, true
	case 0x5B:
		return suffixLIL, true
	}
	return suffixNone, false
}

func (c *Core) applySuffix(sk suffixKind) {
	switch sk {
	case suffixSIS:
		c.L, c.IL = false, false
	case suffixLIS:
		c.L, c.IL = true, false
	case suffixSIL:
		c.L, c.IL = false, true
	case suffixLIL:
		c.L, c.IL = true, true
	}
}

// executeInstruction fetches and runs exactly one logical instruction. DD/FD
// prefix bytes and SIS/LIS/SIL/LIL suffix bytes set their respective latch,
// charge one cycle, and loop back to fetch the next opcode byte within this
// same call rather than returning to the scheduler (spec.md §4.5/§4.6): the
// scheduler only ever sees complete instructions.
func (c *Core) executeInstruction() {
	c.cycles = 0
	for {
		op := c.fetchOpcodeByte()
		switch {
		case op == 0xDD:
			c.Prefix = PrefixDD
			c.cycles++
			continue
		case op == 0xFD:
			c.Prefix = PrefixFD
			c.cycles++
			continue
		}
		if sk, ok := suffixFor(op); ok && c.Suffix == suffixNone {
			c.Suffix = sk
			c.applySuffix(sk)
			c.cycles++
			continue
		}
		c.dispatch(op)
		break
	}
	c.resetControlDataBlocksFormat()
}

// dispatch decodes and executes one primary-page opcode using the classic
// x/y/z/p/q partition (x=op>>6, y=(op>>3)&7, z=op&7, p=y>>1, q=y&1).
func (c *Core) dispatch(op byte) {
	c.cycles += baseCycles(op)

	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		c.dispatchX0(y, z, p, q)
	case 1:
		if z == 6 && y == 6 {
			c.opHALT()
		} else {
			c.opLDRegReg(y, z)
		}
	case 2:
		c.performALU(aluOp(y), c.readReg8(z))
	case 3:
		c.dispatchX3(op, y, z, p, q)
	}
}

func (c *Core) dispatchX0(y, z, p, q byte) {
	switch z {
	case 0:
		switch y {
		case 0: // NOP
		case 1:
			c.ExAF()
		case 2:
			c.opDJNZ()
		case 3:
			c.opJR()
		default:
			c.opJRCC(y)
		}
	case 1:
		if q == 0 {
			c.opLDRPNN(p)
		} else {
			c.addWide(c.rpReg(2), c.rpReg(p).Value(c.L))
		}
	case 2:
		c.opLDIndirect(y)
	case 3:
		if q == 0 {
			c.opINCRP(p)
		} else {
			c.opDECRP(p)
		}
	case 4:
		c.opINCR(y)
	case 5:
		c.opDECR(y)
	case 6:
		c.opLDRegImm(y)
	case 7:
		if c.Prefix != PrefixNone {
			// DD/FD: LD rp3[p],(IX/IY+d) when q=0, LD (IX/IY+d),rp3[p] when q=1.
			addr := c.indexAddress()
			if q == 0 {
				c.rp3Reg(p).SetValue(c.readMemValue(addr, c.L), c.L)
			} else {
				c.writeMemValue(addr, c.rp3Reg(p).Value(c.L), c.L)
			}
			return
		}
		switch y {
		case 0:
			c.opRLCA()
		case 1:
			c.opRRCA()
		case 2:
			c.opRLA()
		case 3:
			c.opRRA()
		case 4:
			c.opDAA()
		case 5:
			c.opCPL()
		case 6:
			c.opSCF()
		case 7:
			c.opCCF()
		}
	}
}

func (c *Core) dispatchX3(op, y, z, p, q byte) {
	switch z {
	case 0:
		c.opRETCC(y)
	case 1:
		if q == 0 {
			c.opPOP(p)
			return
		}
		switch p {
		case 0:
			c.opRET()
		case 1:
			c.Exx()
		case 2:
			c.opJPHL()
		case 3:
			c.opLDSPHL()
		}
	case 2:
		c.opJPCC(y)
	case 3:
		switch y {
		case 0:
			c.opJPNN()
		case 1:
			c.execCB()
		case 2:
			c.opOUTNA()
		case 3:
			c.opINAN()
		case 4:
			c.opEXSPHL()
		case 5:
			c.opEXDEHL()
		case 6:
			c.opDI()
		case 7:
			c.opEI()
		}
	case 4:
		c.opCALLCC(y)
	case 5:
		if q == 0 {
			c.opPUSH(p)
			return
		}
		switch p {
		case 0:
			c.opCALL()
		case 2:
			c.execED()
			// DD (p==1) and FD (p==3) are intercepted by executeInstruction
			// before dispatch ever sees them.
		}
	case 6:
		c.performALU(aluOp(y), c.fetchByte())
	case 7:
		c.opRST(y)
	}
}

// baseCycles is a representative (not cycle-exact) per-opcode cost used to
// drive the scheduler's budget accounting: instruction-level correctness is
// this core's contract, not T-state-perfect timing. Memory-operand and
// wide-immediate forms cost more than register-only forms; the CALL/PUSH/
// block-instruction families get their well-known outsized costs.
func baseCycles(op byte) int {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	q := y & 1

	switch {
	case x == 1 && z == 6 && y == 6: // HALT
		return 4
	case x == 1 && (z == 6 || y == 6): // LD r,(HL)/(HL),r
		return 7
	case x == 1:
		return 4
	case x == 2 && z == 6:
		return 7
	case x == 2:
		return 4
	case x == 0 && z == 1 && q == 0:
		return 10
	case x == 0 && z == 6 && (y == 6):
		return 10
	case x == 0 && z == 6:
		return 7
	case x == 0 && z == 2:
		return 13
	case x == 0 && z == 4 && y == 6, x == 0 && z == 5 && y == 6:
		return 11
	case x == 0:
		return 4
	case x == 3 && z == 5 && q == 0: // PUSH
		return 11
	case x == 3 && z == 1 && q == 0: // POP
		return 10
	case x == 3 && op == 0xCD: // CALL nn
		return 17
	case x == 3 && z == 4: // CALL cc,nn
		return 10
	case x == 3 && z == 0: // RET cc
		return 5
	case x == 3 && z == 1 && q == 1: // RET/EXX/JP HL/LD SP,HL
		return 10
	case x == 3 && z == 7: // RST
		return 11
	case x == 3 && z == 3 && (op == 0xD3 || op == 0xDB): // OUT (n),A / IN A,(n)
		return 11
	default:
		return 4
	}
}
