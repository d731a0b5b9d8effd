package ez80

// Execute is the outer/inner driver loop described in spec.md §4.6. budget
// is the number of cycles the host wants to hand the core; CycleDelta is
// driven from -budget back up to >=0 (or the loop exits early on Exiting or
// a single-step request), and any overshoot carries into the next call.
func (c *Core) Execute(budget int64) {
	c.CycleDelta -= budget

	for !c.Exiting() && c.CycleDelta < 0 {
		c.handleEvents()
		if c.Exiting() {
			return
		}
		c.serviceInterrupts()

		for !c.Exiting() && (c.Prefix != PrefixNone || c.Suffix != suffixNone || c.CycleDelta < 0) {
			if c.Halted {
				remaining := -c.CycleDelta
				if remaining < 1 {
					remaining = 1
				}
				c.CycleDelta += remaining
				break
			}

			c.executeInstruction()
			if c.cycles == 0 {
				// Forward-progress guarantee (spec.md §5): a zero-cost step
				// still advances the budget by one so Execute cannot spin
				// forever on a misbehaving opcode.
				c.CycleDelta++
			} else {
				c.CycleDelta += int64(c.cycles)
			}

			if c.pendingEvents()&EventDebugStep != 0 {
				c.clearEvent(EventDebugStep)
				c.CycleDelta = 0
				return
			}

			c.serviceInterrupts()
		}
	}
}

func (c *Core) handleEvents() {
	if c.pendingEvents()&EventReset != 0 {
		c.clearEvent(EventReset)
		c.Reset()
	}
}

// serviceInterrupts is the pending-interrupt check performed at instruction
// boundaries (cpu.c:1030-1048). IEFWait is the unified EI-delay/opcode-trap
// latch (spec.md §9): when set, this call's only job is to clear it and
// arm IEF1/IEF2 for the FOLLOWING call, so the instruction right after EI
// (or after an opcode-trap opcode) always runs with interrupts still
// effectively held off for itself. A maskable request is then serviced only
// when IEF1 is set and the controller reports a pending, enabled line.
func (c *Core) serviceInterrupts() {
	if c.IEFWait {
		c.IEFWait = false
		c.IEF1 = true
		c.IEF2 = true
		return
	}
	if c.Interrupts == nil || !c.IEF1 {
		return
	}
	if c.Interrupts.Status()&c.Interrupts.Enabled() == 0 {
		return
	}
	c.IEF1 = false
	c.IEF2 = false
	c.Halted = false
	c.CycleDelta++
	if c.IM != 3 {
		// IM 0, 1, and 2 all vector through the mixed-mode RST 0x38 call
		// (cpu.c:1042-1043); this core does not model IM 0's bus-supplied
		// instruction or IM 2's peripheral vector table.
		c.callAddr(0x0038, c.MADL)
		return
	}
	c.CycleDelta++
	addr := uint32(c.I)<<8 | uint32(^c.R)
	c.callAddr(c.readMemValue(addr, false), c.MADL)
	c.CycleDelta += int64(c.cycles)
}
