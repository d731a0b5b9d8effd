package ez80

// execCB is the CB page: rotate/shift (x=0), BIT (x=1), RES (x=2), SET
// (x=3) over r[z]. Under an active DD/FD prefix the opcode is preceded by a
// displacement byte and the memory operand is always (IX+d)/(IY+d)
// regardless of z; RES/SET/rotate additionally copy their result into
// r[z] when z != 6, the well-known "shadow register" side effect of the
// indexed CB encoding. BIT never writes back.
func (c *Core) execCB() {
	displaced := c.Prefix != PrefixNone
	var addr uint32
	if displaced {
		addr = c.indexAddress()
	}

	op := c.fetchOpcodeByte()
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7

	var value byte
	if displaced {
		value = c.memRead(addr)
	} else {
		value = c.readReg8(z)
	}

	if x == 1 {
		c.cbBit(y, value)
		return
	}

	var result byte
	switch x {
	case 0:
		result = c.cbRotateShift(y, value)
	case 2:
		result = value &^ (1 << y)
	case 3:
		result = value | (1 << y)
	}

	if displaced {
		c.memWrite(addr, result)
		if z != 6 {
			c.writeReg8Plain(z, result)
		}
		return
	}
	c.writeReg8(z, result)
}

// cbRotateShift implements RLC/RRC/RL/RR/SLA/SRA/SLL/SRL. SLL (y==6) is the
// undocumented "shift left, set bit 0" form, carried forward because real
// eZ80 silicon still decodes it that way.
func (c *Core) cbRotateShift(y byte, v byte) byte {
	var result byte
	var carry bool
	switch y {
	case 0:
		result, carry = c.rotateLeft(v, v&0x80 != 0)
	case 1:
		result, carry = c.rotateRight(v, v&0x01 != 0)
	case 2:
		result, carry = c.rotateLeft(v, c.Flag(FlagC))
	case 3:
		result, carry = c.rotateRight(v, c.Flag(FlagC))
	case 4:
		result, carry = c.shiftLeftArithmetic(v)
	case 5:
		result, carry = c.shiftRightArithmetic(v)
	case 6:
		result, carry = v<<1|1, v&0x80 != 0
	case 7:
		result, carry = c.shiftRightLogical(v)
	}
	f := byte(0)
	if carry {
		f |= FlagC
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
	c.SetF(undefBitsFrom(result, f))
	return result
}

// cbBit implements BIT y,r. X/Y undefined bits are copied from the tested
// value itself; a real eZ80 derives them from the MEMPTR latch for the
// (HL)/(IX+d) forms, which this core does not model.
func (c *Core) cbBit(y byte, v byte) {
	set := v&(1<<y) != 0
	f := (c.F() & FlagC) | FlagH
	if !set {
		f |= FlagZ | FlagPV
	}
	if y == 7 && set {
		f |= FlagS
	}
	c.SetF(undefBitsFrom(v, f))
}
