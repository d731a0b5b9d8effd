package main

import (
	"fmt"
	"os"

	"github.com/ez80vm/ez80core/ez80"
	"github.com/spf13/cobra"
)

// flatBus is a 16MB flat memory image plus a 64K port space, enough to load
// a raw binary and single-step it without any host device emulation.
type flatBus struct {
	mem   [1 << 24]byte
	ports [1 << 16]byte
}

func (b *flatBus) MemRead(addr uint32) byte      { return b.mem[addr&0xFFFFFF] }
func (b *flatBus) MemWrite(addr uint32, v byte)  { b.mem[addr&0xFFFFFF] = v }
func (b *flatBus) PortRead(port uint16) byte     { return b.ports[port] }
func (b *flatBus) PortWrite(port uint16, v byte) { b.ports[port] = v }

// noInterrupts reports no pending interrupt line, so a bare binary runs to
// completion (HALT) without an external interrupt controller wired in.
type noInterrupts struct{}

func (noInterrupts) Status() uint32  { return 0 }
func (noInterrupts) Enabled() uint32 { return 0 }

func main() {
	var loadAddr uint32
	var startAddr uint32
	var cycles int64
	var adl bool
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ez80run [binary]",
		Short: "Load a raw eZ80 binary and drive the interpreter core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			bus := &flatBus{}
			copy(bus.mem[loadAddr:], data)

			core := ez80.New(bus)
			core.Interrupts = noInterrupts{}
			core.Reset()
			core.Flush(startAddr, adl)

			core.Execute(cycles)

			if verbose {
				printSnapshot(core.Snapshot())
			}
			fmt.Printf("halted=%v pc=%06X\n", core.Snapshot().Halted, core.Snapshot().PC)
			return nil
		},
	}

	rootCmd.Flags().Uint32Var(&loadAddr, "load-addr", 0, "address the binary is loaded at")
	rootCmd.Flags().Uint32Var(&startAddr, "start-addr", 0, "address execution begins at")
	rootCmd.Flags().Int64Var(&cycles, "cycles", 1_000_000, "cycle budget to hand the core")
	rootCmd.Flags().BoolVar(&adl, "adl", false, "start in ADL (24-bit) mode instead of Z80 mode")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the full register snapshot")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printSnapshot(s ez80.Snapshot) {
	fmt.Printf("AF=%06X BC=%06X DE=%06X HL=%06X\n", s.AF, s.BC, s.DE, s.HL)
	fmt.Printf("AF'=%06X BC'=%06X DE'=%06X HL'=%06X\n", s.AF2, s.BC2, s.DE2, s.HL2)
	fmt.Printf("IX=%06X IY=%06X SP=%06X PC=%06X\n", s.IX, s.IY, s.SP, s.PC)
	fmt.Printf("I=%02X R=%02X MBASE=%02X ADL=%v MADL=%v L=%v IL=%v\n",
		s.I, s.R, s.MBASE, s.ADL, s.MADL, s.L, s.IL)
	fmt.Printf("IEF1=%v IEF2=%v IM=%d halted=%v\n", s.IEF1, s.IEF2, s.IM, s.Halted)
}
