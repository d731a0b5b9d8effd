package ez80

// spPushByte/spPopByte push/pop a single byte on SP at the given width
// (SPS when !wide, SPL when wide), independent of the current L latch —
// CALL/RET frame shaping (spec.md §4.5) needs explicit control over which
// stack pointer width is used, decoupled from the instruction's own data
// width.
func (c *Core) spPushByte(wide bool, v byte) {
	sp := mask(c.SP.Value(wide)-1, wide)
	c.SP.SetValue(sp, wide)
	c.memWriteWidth(sp, v, wide)
}

func (c *Core) spPopByte(wide bool) byte {
	sp := c.SP.Value(wide)
	v := c.memReadWidth(sp, wide)
	c.SP.SetValue(mask(sp+1, wide), wide)
	return v
}

// pushWord pushes a 16- or 24-bit value high-byte(s)-first, so a matching
// popWord reads it back low-byte-first from the lower address, matching
// the classic PUSH rp / POP rp byte order.
func (c *Core) pushWord(wide bool, v uint32) {
	if wide {
		c.spPushByte(true, byte(v>>16))
	}
	c.spPushByte(wide, byte(v>>8))
	c.spPushByte(wide, byte(v))
}

// pushWord16/popWord16 push/pop exactly a 16-bit value (no optional upper
// byte), used by the mixed-mode CALL/RET frame where the PCU byte is
// pushed/popped separately and independently of the SPS/SPL choice made
// for the PCH/PCL pair (spec.md §4.5).
func (c *Core) pushWord16(wide bool, v uint16) {
	c.spPushByte(wide, byte(v>>8))
	c.spPushByte(wide, byte(v))
}

func (c *Core) popWord16(wide bool) uint16 {
	lo := c.spPopByte(wide)
	hi := c.spPopByte(wide)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Core) popWord(wide bool) uint32 {
	lo := uint32(c.spPopByte(wide))
	hi := uint32(c.spPopByte(wide))
	v := hi<<8 | lo
	if wide {
		up := uint32(c.spPopByte(wide))
		v |= up << 16
	}
	return v
}

// push/pop operate at the instruction's current data width (PUSH rp/POP
// rp, RST, plain CALL/RET).
func (c *Core) push(v uint32) { c.pushWord(c.L, v) }
func (c *Core) pop() uint32   { return c.popWord(c.L) }
