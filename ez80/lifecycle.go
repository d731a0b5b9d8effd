package ez80

// Init zeroes all architectural state (spec.md §3 "Lifecycles", §6
// cpu_init()). It does not touch Bus/Debugger/Interrupts/FlashEraser.
func (c *Core) Init() {
	*c = Core{
		Bus:              c.Bus,
		Debugger:         c.Debugger,
		Interrupts:       c.Interrupts,
		FlashEraser:      c.FlashEraser,
		EnableFlashErase: c.EnableFlashErase,
	}
}

// Reset zeroes registers and mode latches, then refills prefetch at PC=0 in
// Z80 (ADL=0) mode (spec.md §3/§6 cpu_reset()).
func (c *Core) Reset() {
	bus, dbg, irq, flash, flashEnabled := c.Bus, c.Debugger, c.Interrupts, c.FlashEraser, c.EnableFlashErase
	*c = Core{
		Bus:              bus,
		Debugger:         dbg,
		Interrupts:       irq,
		FlashEraser:      flash,
		EnableFlashErase: flashEnabled,
	}
	c.SP.SetWord(0xFFFF)
	c.prefetchAt(0, false)
}

// Flush sets PC/ADL to (addr, mode), clears PREFIX/SUFFIX so instruction
// width follows ADL again, and refills prefetch (spec.md §3/§6
// cpu_flush(addr24, mode_bit)).
func (c *Core) Flush(addr uint32, mode bool) {
	c.Prefix = PrefixNone
	c.Suffix = suffixNone
	c.prefetchAt(addr, mode)
}

// resetControlDataBlocksFormat clears PREFIX and SUFFIX and reinitializes
// L/IL from ADL for the instruction about to be fetched. This is the Go
// form of the source's reset_cntrl_data_blocks_format(), called by the
// scheduler after every completed instruction (spec.md §4.6).
func (c *Core) resetControlDataBlocksFormat() {
	c.Prefix = PrefixNone
	c.Suffix = suffixNone
	c.L = c.ADL
	c.IL = c.ADL
}
