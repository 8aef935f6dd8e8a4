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

package scripted

import (
	"fmt"
	"io"

	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/logger"
	lua "github.com/yuin/gopher-lua"
)

// Error patterns.
const (
	ScriptError     = "scripted: %v"
	MissingFunction = "scripted: script does not define function: %s"
)

// Peripheral is a memory.Peripheral implemented by a Lua script.
type Peripheral struct {
	name  string
	state *lua.LState

	read  *lua.LFunction
	write *lua.LFunction

	output io.Writer

	// the number of errors raised by the script since creation
	errors int
}

// NewFromFile creates a new Peripheral from the Lua script in the named file.
func NewFromFile(filename string) (*Peripheral, error) {
	return newPeripheral(filename, func(L *lua.LState) error {
		return L.DoFile(filename)
	})
}

// NewFromString creates a new Peripheral from the Lua script in the string. The
// name is used for logging.
func NewFromString(name string, script string) (*Peripheral, error) {
	return newPeripheral(name, func(L *lua.LState) error {
		return L.DoString(script)
	})
}

func newPeripheral(name string, load func(*lua.LState) error) (*Peripheral, error) {
	p := &Peripheral{
		name:   name,
		state:  lua.NewState(),
		output: io.Discard,
	}

	p.state.SetGlobal("log", p.state.NewFunction(p.luaLog))
	p.state.SetGlobal("emit", p.state.NewFunction(p.luaEmit))

	if err := load(p.state); err != nil {
		p.state.Close()
		return nil, curated.Errorf(ScriptError, err)
	}

	var ok bool
	if p.read, ok = p.state.GetGlobal("read").(*lua.LFunction); !ok {
		p.state.Close()
		return nil, curated.Errorf(MissingFunction, "read")
	}
	if p.write, ok = p.state.GetGlobal("write").(*lua.LFunction); !ok {
		p.state.Close()
		return nil, curated.Errorf(MissingFunction, "write")
	}

	logger.Logf(logger.Allow, "script", "%s: loaded", p.name)

	return p, nil
}

func (p *Peripheral) String() string {
	return p.name
}

// SetOutput sets the destination of the emit() function. The default output
// discards everything.
func (p *Peripheral) SetOutput(output io.Writer) {
	if output == nil {
		output = io.Discard
	}
	p.output = output
}

// Errors returns the number of errors raised by the script.
func (p *Peripheral) Errors() int {
	return p.errors
}

// Close the Lua state. The peripheral should not be used after this.
func (p *Peripheral) Close() {
	p.state.Close()
}

// Read implements the memory.Peripheral interface.
func (p *Peripheral) Read(address uint32) uint32 {
	err := p.state.CallByParam(lua.P{
		Fn:      p.read,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(address))
	if err != nil {
		p.scriptError("read", address, err)
		return 0
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		p.scriptError("read", address, fmt.Errorf("return value is not a number (%s)", ret.Type()))
		return 0
	}

	return uint32(int64(n))
}

// Write implements the memory.Peripheral interface.
func (p *Peripheral) Write(address uint32, data uint32, size bus.TransferSize) {
	shift := (address & 0x03 &^ (size.Width() - 1)) * 8
	value := data >> shift
	switch size {
	case bus.Byte:
		value &= 0xff
	case bus.Halfword:
		value &= 0xffff
	}

	err := p.state.CallByParam(lua.P{
		Fn:      p.write,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(address), lua.LNumber(value), lua.LNumber(size.Width()))
	if err != nil {
		p.scriptError("write", address, err)
	}
}

func (p *Peripheral) scriptError(event string, address uint32, err error) {
	p.errors++
	logger.Logf(logger.Allow, "script", "%s: %s %08x: %v", p.name, event, address, err)
}

// log(string) adds an entry to the central log
func (p *Peripheral) luaLog(L *lua.LState) int {
	logger.Logf(logger.Allow, "script", "%s: %s", p.name, L.CheckString(1))
	return 0
}

// emit(string) writes the string to the peripheral output
func (p *Peripheral) luaEmit(L *lua.LState) int {
	_, _ = io.WriteString(p.output, L.CheckString(1))
	return 0
}
