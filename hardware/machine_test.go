// This file is part of arm7tdmi.
//
// arm7tdmi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// arm7tdmi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with arm7tdmi.  If not, see <https://www.gnu.org/licenses/>.

package hardware_test

import (
	"bytes"
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/digest"
	"github.com/jetsetilly/arm7tdmi/hardware"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu"
	"github.com/jetsetilly/arm7tdmi/hardware/memory/scripted"
	"github.com/jetsetilly/arm7tdmi/hardware/preferences"
	"github.com/jetsetilly/arm7tdmi/test"
)

// sums the numbers 5 to 1 into r1 and stores the result at 0x100
var summation = []uint32{
	0xe3a00005, // mov r0, #5
	0xe3a01000, // mov r1, #0
	0xe0811000, // loop: add r1, r1, r0
	0xe2500001, // subs r0, r0, #1
	0x1afffffc, // bne loop
	0xe3a02c01, // mov r2, #0x100
	0xe5821000, // str r1, [r2]
	0xeafffffe, // b .
}

func image(words []uint32) *bytes.Buffer {
	b := &bytes.Buffer{}
	for _, w := range words {
		_ = binary.Write(b, binary.LittleEndian, w)
	}
	return b
}

func newMachine(words []uint32) *hardware.Machine {
	m, err := hardware.NewMachine(nil)
	Expect(err).NotTo(HaveOccurred())
	Expect(m.Load(image(words))).To(Succeed())
	return m
}

var _ = Describe("Machine", func() {
	Describe("running a program", func() {
		var m *hardware.Machine

		BeforeEach(func() {
			m = newMachine(summation)
		})

		It("should compute the result", func() {
			Expect(m.RunFor(200)).To(Succeed())
			Expect(m.CPU.Registers().Get(1, 0)).To(Equal(uint32(15)))

			v, ok := m.Mem.Peek(0x100)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(uint32(15)))
		})

		It("should account for every clock", func() {
			Expect(m.RunFor(200)).To(Succeed())

			s := m.Stats()
			Expect(s.Clocks).To(Equal(uint64(200)))
			Expect(s.N + s.S + s.I + s.C).To(Equal(s.Clocks))
			Expect(s.Retired).To(Equal(m.CPU.Retired()))
			Expect(s.Waits).To(BeZero())
			Expect(s.CPI()).To(BeNumerically(">", 1.0))
		})

		It("should stop when the continue check fails", func() {
			var checks int
			err := m.Run(func() (bool, error) {
				checks++
				return checks < 3, nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Stats().Clocks).To(Equal(uint64(3 * hardware.PerformanceBrake)))
		})

		It("should step one instruction at a time", func() {
			// the two instructions retired after a reset are the NOPs that
			// prime the pipeline
			for i := 0; i < 2; i++ {
				clocks, err := m.StepInstruction()
				Expect(err).NotTo(HaveOccurred())
				Expect(clocks).To(Equal(1))
			}
			Expect(m.CPU.Registers().Get(0, 0)).To(BeZero())

			clocks, err := m.StepInstruction()
			Expect(err).NotTo(HaveOccurred())
			Expect(clocks).To(Equal(1))
			Expect(m.CPU.Registers().Get(0, 0)).To(Equal(uint32(5)))
		})

		It("should start again after a reset", func() {
			Expect(m.RunFor(200)).To(Succeed())
			m.Reset()
			Expect(m.Stats()).To(Equal(hardware.Stats{}))
			Expect(m.CPU.InstructionAddress()).To(Equal(uint32(cpu.DefaultResetVector - 8)))

			Expect(m.RunFor(200)).To(Succeed())
			Expect(m.CPU.Registers().Get(1, 0)).To(Equal(uint32(15)))
		})
	})

	Describe("wait states", func() {
		It("should slow the program without changing the result", func() {
			fast := newMachine(summation)
			Expect(fast.RunFor(200)).To(Succeed())

			slow := newMachine(summation)
			Expect(slow.Prefs.Set("memory.waitStates", 2)).To(Succeed())
			Expect(slow.RunFor(200)).To(Succeed())
			Expect(slow.Stats().Waits).To(BeNumerically(">", 0))
			Expect(slow.Stats().Retired).To(BeNumerically("<", fast.Stats().Retired))

			Expect(slow.RunFor(400)).To(Succeed())
			Expect(slow.CPU.Registers().Get(1, 0)).To(Equal(uint32(15)))
		})

		It("should reject negative values", func() {
			m := newMachine(summation)
			Expect(m.Prefs.Set("memory.waitStates", -1)).NotTo(Succeed())
		})
	})

	Describe("faults", func() {
		It("should ignore writes to ROM", func() {
			m := newMachine([]uint32{
				0xe3a00008, // mov r0, #8
				0xe1a00c00, // mov r0, r0, lsl #24
				0xe3a01001, // mov r1, #1
				0xe5801000, // str r1, [r0]
				0xeafffffe, // b .
			})
			Expect(m.RunFor(50)).To(Succeed())

			n, f := m.Mem.Faults()
			Expect(n).To(Equal(1))
			Expect(f.Address).To(Equal(uint32(0x08000000)))

			v, _ := m.Mem.Peek(0x08000000)
			Expect(v).To(Equal(uint32(0xe3a00008)))
		})
	})

	Describe("undefined instructions", func() {
		undefined := []uint32{
			0xe7f000f0, // undefined
			0xeafffffe, // b .
		}

		It("should take the exception by default", func() {
			m := newMachine(undefined)
			Expect(m.RunFor(50)).To(Succeed())
		})

		It("should halt when the preference is set", func() {
			m := newMachine(undefined)
			Expect(m.Prefs.Set("cpu.haltOnUndefined", true)).To(Succeed())
			Expect(m.CPU.HaltOnUndefined).To(BeTrue())

			err := m.Run(nil)
			Expect(err).To(HaveOccurred())
			Expect(curated.Is(err, hardware.MachineError)).To(BeTrue())
			Expect(curated.Has(err, cpu.UndefinedInstruction)).To(BeTrue())
		})
	})

	Describe("peripherals", func() {
		It("should receive byte stores", func() {
			p, err := scripted.NewFromString("port", `
function write(address, value, size)
	emit(string.char(value))
end

function read(address)
	return 0
end
`)
			Expect(err).NotTo(HaveOccurred())
			defer p.Close()

			w := &test.CompareWriter{}
			p.SetOutput(w)

			m := newMachine([]uint32{
				0xe3a03101, // mov r3, #0x40000000
				0xe3a04041, // mov r4, #'A'
				0xe5c34000, // strb r4, [r3]
				0xe3a04042, // mov r4, #'B'
				0xe5c34000, // strb r4, [r3]
				0xeafffffe, // b .
			})
			Expect(m.AttachPeripheral("port", 0x40000000, 0x100, p)).To(Succeed())
			Expect(m.RunFor(50)).To(Succeed())
			Expect(w.String()).To(Equal("AB"))
		})

		It("should not overlap existing memory", func() {
			m := newMachine(summation)
			p, err := scripted.NewFromString("port", "function read(a) return 0 end function write(a, v, s) end")
			Expect(err).NotTo(HaveOccurred())
			defer p.Close()
			Expect(m.AttachPeripheral("port", 0x00000100, 0x100, p)).NotTo(Succeed())
		})
	})
})

var _ = Describe("Bus digest", func() {
	run := func(waitStates int) *digest.Bus {
		m := newMachine(summation)
		Expect(m.Prefs.Set("memory.waitStates", waitStates)).To(Succeed())
		dig := digest.NewBus(m.Mem)
		m.SetCollaborator(dig)
		Expect(m.RunFor(300)).To(Succeed())
		Expect(dig.Events()).To(Equal(uint64(300)))
		return dig
	}

	It("should be the same for identical runs", func() {
		Expect(run(0).Hash()).To(Equal(run(0).Hash()))
	})

	It("should change when the timing changes", func() {
		Expect(run(0).Hash()).NotTo(Equal(run(1).Hash()))
	})

	It("should not change the result", func() {
		m := newMachine(summation)
		m.SetCollaborator(digest.NewBus(m.Mem))
		Expect(m.RunFor(200)).To(Succeed())
		Expect(m.CPU.Registers().Get(1, 0)).To(Equal(uint32(15)))

		m.SetCollaborator(nil)
		Expect(m.RunFor(10)).To(Succeed())
	})
})

var _ = Describe("Preferences", func() {
	It("should configure the memory map", func() {
		p, err := preferences.NewPreferences()
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Set("memory.ramSize", 0x1000)).To(Succeed())

		m, err := hardware.NewMachine(p)
		Expect(err).NotTo(HaveOccurred())

		_, ok := m.Mem.Peek(0x1000)
		Expect(ok).To(BeFalse())
		_, ok = m.Mem.Peek(0x0ffc)
		Expect(ok).To(BeTrue())
	})
})
