package ez80

type aluOp byte

const (
	aluAdd aluOp = iota
	aluAdc
	aluSub
	aluSbc
	aluAnd
	aluXor
	aluOr
	aluCp
)

// performALU is the 8-bit ALU kernel shared by ADD/ADC/SUB/SBC/AND/XOR/OR/CP
// A,r and their immediate forms (spec.md §4.5 primary page, §4.1 flag
// kernel). Every branch updates F from scratch and folds in the undefined
// bits from the result itself, matching real Z80/eZ80 behaviour.
func (c *Core) performALU(op aluOp, value byte) {
	a := c.A()
	carryIn := byte(0)
	if (op == aluAdc || op == aluSbc) && c.Flag(FlagC) {
		carryIn = 1
	}

	var result byte
	var f byte

	switch op {
	case aluAdd, aluAdc:
		result = a + value + carryIn
		if halfCarryAdd(a, value, carryIn) {
			f |= FlagH
		}
		if carryAddByte(a, value, carryIn) {
			f |= FlagC
		}
		if overflowAddByte(a, value, result) {
			f |= FlagPV
		}
		c.SetA(result)
	case aluSub, aluSbc, aluCp:
		result = a - value - carryIn
		if halfCarrySub(a, value, carryIn) {
			f |= FlagH
		}
		if carrySubByte(a, value, carryIn) {
			f |= FlagC
		}
		if overflowSubByte(a, value, result) {
			f |= FlagPV
		}
		f |= FlagN
		if op != aluCp {
			c.SetA(result)
		}
	case aluAnd:
		result = a & value
		f |= FlagH
		if parity8(result) {
			f |= FlagPV
		}
		c.SetA(result)
	case aluXor:
		result = a ^ value
		if parity8(result) {
			f |= FlagPV
		}
		c.SetA(result)
	case aluOr:
		result = a | value
		if parity8(result) {
			f |= FlagPV
		}
		c.SetA(result)
	}

	if signByte(result) {
		f |= FlagS
	}
	if zeroByte(result) {
		f |= FlagZ
	}
	c.SetF(undefBitsFrom(result, f))
}

// inc8/dec8 implement INC/DEC r and (HL)/(IX+d): carry is preserved, unlike
// the ALU add/sub forms.
func (c *Core) inc8(v byte) byte {
	result := v + 1
	f := c.F() & FlagC
	if halfCarryAdd(v, 1, 0) {
		f |= FlagH
	}
	if v == 0x7F {
		f |= FlagPV
	}
	if signByte(result) {
		f |= FlagS
	}
	if zeroByte(result) {
		f |= FlagZ
	}
	c.SetF(undefBitsFrom(result, f))
	return result
}

func (c *Core) dec8(v byte) byte {
	result := v - 1
	f := (c.F() & FlagC) | FlagN
	if halfCarrySub(v, 1, 0) {
		f |= FlagH
	}
	if v == 0x80 {
		f |= FlagPV
	}
	if signByte(result) {
		f |= FlagS
	}
	if zeroByte(result) {
		f |= FlagZ
	}
	c.SetF(undefBitsFrom(result, f))
	return result
}

// addWide implements ADD HL/IX/IY,rp — carry/half-carry set, N cleared,
// S/Z/PV untouched (classic Z80 behaviour, unchanged by ADL width).
func (c *Core) addWide(dst *reg24, value uint32) {
	a := dst.Value(c.L)
	result := a + value
	f := c.F() &^ (FlagH | FlagN | FlagC)
	if halfCarryAddWord(a, value, 0) {
		f |= FlagH
	}
	if carryAddWord(a, value, 0, c.L) {
		f |= FlagC
	}
	dst.SetValue(mask(result, c.L), c.L)
	c.SetF(undefBitsFrom(byte(result>>8), f))
}

// adcWideHL/sbcWideHL implement ADC/SBC HL,rp — full S/Z/H/PV/N/C update, per
// the scenario in spec.md §8 item 2.
func (c *Core) adcWideHL(value uint32) {
	a := c.HL.Value(c.L)
	carryIn := uint32(0)
	if c.Flag(FlagC) {
		carryIn = 1
	}
	result := mask(a+value+carryIn, c.L)
	var f byte
	if halfCarryAddWord(a, value, carryIn) {
		f |= FlagH
	}
	if carryAddWord(a, value, carryIn, c.L) {
		f |= FlagC
	}
	if overflowAddWord(a, value, result, c.L) {
		f |= FlagPV
	}
	if signWord(result, c.L) {
		f |= FlagS
	}
	if zeroWord(result, c.L) {
		f |= FlagZ
	}
	c.HL.SetValue(result, c.L)
	c.SetF(undefBitsFrom(byte(result>>8), f))
}

func (c *Core) sbcWideHL(value uint32) {
	a := c.HL.Value(c.L)
	carryIn := uint32(0)
	if c.Flag(FlagC) {
		carryIn = 1
	}
	result := mask(a-value-carryIn, c.L)
	f := FlagN
	if halfCarrySubWord(a, value, carryIn) {
		f |= FlagH
	}
	if carrySubWord(a, value, carryIn, c.L) {
		f |= FlagC
	}
	if overflowSubWord(a, value, result, c.L) {
		f |= FlagPV
	}
	if signWord(result, c.L) {
		f |= FlagS
	}
	if zeroWord(result, c.L) {
		f |= FlagZ
	}
	c.HL.SetValue(result, c.L)
	c.SetF(undefBitsFrom(byte(result>>8), f))
}

// --- rotate/shift primitives, shared by RLCA/RRCA/RLA/RRA and the CB page ---

func (c *Core) rotateLeft(v byte, carryIn bool) (byte, bool) {
	carryOut := v&0x80 != 0
	result := v << 1
	if carryIn {
		result |= 1
	}
	return result, carryOut
}

func (c *Core) rotateRight(v byte, carryIn bool) (byte, bool) {
	carryOut := v&0x01 != 0
	result := v >> 1
	if carryIn {
		result |= 0x80
	}
	return result, carryOut
}

func (c *Core) shiftLeftArithmetic(v byte) (byte, bool) {
	return v << 1, v&0x80 != 0
}

func (c *Core) shiftRightArithmetic(v byte) (byte, bool) {
	return (v >> 1) | (v & 0x80), v&0x01 != 0
}

func (c *Core) shiftRightLogical(v byte) (byte, bool) {
	return v >> 1, v&0x01 != 0
}

func (c *Core) opRLCA() {
	result, carry := c.rotateLeft(c.A(), c.A()&0x80 != 0)
	c.SetA(result)
	f := (c.F() &^ (FlagH | FlagN | FlagC))
	if carry {
		f |= FlagC
	}
	c.SetF(undefBitsFrom(result, f))
}

func (c *Core) opRRCA() {
	result, carry := c.rotateRight(c.A(), c.A()&0x01 != 0)
	c.SetA(result)
	f := c.F() &^ (FlagH | FlagN | FlagC)
	if carry {
		f |= FlagC
	}
	c.SetF(undefBitsFrom(result, f))
}

func (c *Core) opRLA() {
	result, carry := c.rotateLeft(c.A(), c.Flag(FlagC))
	c.SetA(result)
	f := c.F() &^ (FlagH | FlagN | FlagC)
	if carry {
		f |= FlagC
	}
	c.SetF(undefBitsFrom(result, f))
}

func (c *Core) opRRA() {
	result, carry := c.rotateRight(c.A(), c.Flag(FlagC))
	c.SetA(result)
	f := c.F() &^ (FlagH | FlagN | FlagC)
	if carry {
		f |= FlagC
	}
	c.SetF(undefBitsFrom(result, f))
}

func (c *Core) opDAA() {
	a := c.A()
	adj := byte(0)
	carry := c.Flag(FlagC)
	sub := c.Flag(FlagN)
	half := c.Flag(FlagH)

	if half || (!sub && (a&0x0F) > 0x09) {
		adj |= 0x06
	}
	if carry || (!sub && a > 0x99) {
		adj |= 0x60
	}

	var result byte
	if sub {
		result = a - adj
	} else {
		result = a + adj
	}

	f := byte(0)
	if sub {
		// H after a subtracting DAA is recomputed from the pre-adjustment
		// value and the correction, not forced to zero.
		if halfCarrySub(a, adj, 0) {
			f |= FlagH
		}
	} else if halfCarryAdd(a, adj, 0) {
		f |= FlagH
	}
	if adj&0x60 != 0 {
		f |= FlagC
	}
	if sub {
		f |= FlagN
	}
	if signByte(result) {
		f |= FlagS
	}
	if zeroByte(result) {
		f |= FlagZ
	}
	if parity8(result) {
		f |= FlagPV
	}
	c.SetA(result)
	c.SetF(undefBitsFrom(result, f))
}

func (c *Core) opCPL() {
	result := ^c.A()
	c.SetA(result)
	f := (c.F() & (FlagS | FlagZ | FlagPV | FlagC)) | FlagH | FlagN
	c.SetF(undefBitsFrom(result, f))
}

func (c *Core) opSCF() {
	f := (c.F() & (FlagS | FlagZ | FlagPV)) | FlagC
	c.SetF(undefBitsFrom(c.A(), f))
}

func (c *Core) opCCF() {
	wasCarry := c.Flag(FlagC)
	f := c.F() & (FlagS | FlagZ | FlagPV)
	if wasCarry {
		f |= FlagH
	} else {
		f |= FlagC
	}
	c.SetF(undefBitsFrom(c.A(), f))
}
