package ez80

import "testing"

// TestExecuteDrainsBudgetOnHalt is scenario 3: once HALT latches, Execute
// must drain the remaining budget in one step rather than re-executing
// HALT every cycle.
func TestExecuteDrainsBudgetOnHalt(t *testing.T) {
	r := newZ80TestRig()
	r.load(0x0000, []byte{0x76}) // HALT
	r.core.Execute(100)
	requireTrue(t, "halted", r.core.Halted)
	requireEqualU32(t, "PC advanced past the HALT opcode once", r.core.PC, 0x0001)
	if r.core.CycleDelta < 0 {
		t.Fatalf("CycleDelta = %d, want budget fully drained", r.core.CycleDelta)
	}
}

// TestExecuteStopsOnExiting exercises the cooperative-cancellation surface
// spec.md §5 names: a host setting Exiting from outside the goroutine
// running Execute must see the loop terminate at the next loop head.
func TestExecuteStopsOnExiting(t *testing.T) {
	r := newZ80TestRig()
	r.load(0x0000, []byte{0x00}) // NOP
	r.core.SetExiting(true)
	r.core.Execute(1000)
	requireTrue(t, "Exiting observed", r.core.Exiting())
	if r.core.CycleDelta >= 0 {
		t.Fatalf("CycleDelta = %d, want the budget left undrained", r.core.CycleDelta)
	}
}

// TestPostEventResetReinitializesCore exercises the RESET event bit: a host
// posting EventReset asks the next Execute call to reinitialize the core
// before running anything else.
func TestPostEventResetReinitializesCore(t *testing.T) {
	r := newZ80TestRig()
	r.core.SetA(0x42)
	r.core.PostEvent(EventReset)
	r.core.Execute(1)
	requireEqualU8(t, "A zeroed by reset", r.core.A(), 0x00)
	requireEqualU32(t, "SP reset to FFFF", r.core.SP.Value(false), 0xFFFF)
}

// TestServiceInterruptsIM1 exercises the maskable-interrupt dispatch path:
// IM 1 always vectors to 0x0038 and clears both interrupt flip-flops.
func TestServiceInterruptsIM1(t *testing.T) {
	r := newZ80TestRig()
	r.core.SP.SetWord(0xFFF0)
	r.core.PC = 0x1000
	r.core.IEF1 = true
	r.core.IM = 1
	r.irq.status = 1
	r.irq.enabled = 1

	r.core.serviceInterrupts()

	requireEqualU32(t, "PC at IM1 vector", r.core.PC, 0x0038)
	requireFalse(t, "IEF1 cleared", r.core.IEF1)
	requireFalse(t, "IEF2 cleared", r.core.IEF2)
}

// TestServiceInterruptsRespectsIEF1 confirms a pending maskable request is
// ignored while interrupts are disabled.
func TestServiceInterruptsRespectsIEF1(t *testing.T) {
	r := newZ80TestRig()
	r.core.PC = 0x1000
	r.core.IEF1 = false
	r.core.IM = 1
	r.irq.status = 1
	r.irq.enabled = 1

	r.core.serviceInterrupts()

	requireEqualU32(t, "PC untouched", r.core.PC, 0x1000)
}
