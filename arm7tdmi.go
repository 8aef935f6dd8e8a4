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

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/arm7tdmi/digest"
	"github.com/jetsetilly/arm7tdmi/hardware"
	"github.com/jetsetilly/arm7tdmi/hardware/memory/scripted"
	"github.com/jetsetilly/arm7tdmi/hardware/preferences"
	"github.com/jetsetilly/arm7tdmi/logger"
	"github.com/jetsetilly/arm7tdmi/modalflag"
	"github.com/jetsetilly/arm7tdmi/monitor"
	"github.com/jetsetilly/arm7tdmi/prefs"
	"github.com/jetsetilly/arm7tdmi/statsview"
	"github.com/jetsetilly/arm7tdmi/version"
)

// size of the address range given to a scripted peripheral
const scriptSize = 0x1000

func main() {
	os.Exit(launch(os.Args[1:]))
}

// launch returns the value to be used with os.Exit()
func launch(args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "STEP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "STEP":
		err = step(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

// create a machine using the command line preferences and load the program
// image into it
func newMachine(md *modalflag.Modes, cmdlinePrefs string) (*hardware.Machine, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("program image required for %s mode", md)
	case 1:
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	prefs.PushCommandLineStack(cmdlinePrefs)
	p, err := preferences.NewPreferences()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "machine", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	m, err := hardware.NewMachine(p)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(md.GetArg(0))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := m.Load(f); err != nil {
		return nil, err
	}

	return m, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	cycles := md.AddUint64("cycles", 0, "number of clocks to run for (0 runs until halted or interrupted)")
	log := md.AddBool("log", false, "echo log to stdout")
	cmdlinePrefs := md.AddString("prefs", "", "preferences to apply (key::value; key::value)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	memvizFile := md.AddString("memviz", "", "write graphviz representation of the CPU to file on exit")
	script := md.AddString("script", "", "lua script implementing a memory mapped peripheral")
	scriptOrigin := md.AddAddress("scriptorigin", 0x40000000, "address of the scripted peripheral")
	showDigest := md.AddBool("digest", false, "print digest of bus activity on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	m, err := newMachine(md, *cmdlinePrefs)
	if err != nil {
		return err
	}

	if *script != "" {
		sp, err := scripted.NewFromFile(*script)
		if err != nil {
			return err
		}
		defer sp.Close()
		sp.SetOutput(os.Stdout)

		if err := m.AttachPeripheral(*script, *scriptOrigin, scriptSize, sp); err != nil {
			return err
		}
	}

	var dig *digest.Bus
	if *showDigest {
		dig = digest.NewBus(m.Mem)
		m.SetCollaborator(dig)
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	runErr := m.RunLimit(*cycles, func() (bool, error) {
		select {
		case <-intChan:
			return false, nil
		default:
		}
		return true, nil
	})

	fmt.Println(m)
	if n, f := m.Mem.Faults(); n > 0 {
		fmt.Printf("memory faults: %d (last %s)\n", n, f)
	}
	if dig != nil {
		fmt.Printf("digest: %s\n", dig.Hash())
	}

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, m.CPU)
	}

	return runErr
}

func step(md *modalflag.Modes) error {
	md.NewMode()

	cmdlinePrefs := md.AddString("prefs", "", "preferences to apply (key::value; key::value)")
	log := md.AddInt("log", 0, "number of log entries to show after each command")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// the log is shown by the monitor
	logger.SetEcho(nil)

	m, err := newMachine(md, *cmdlinePrefs)
	if err != nil {
		return err
	}

	tty, err := monitor.OpenTerminal()
	if err != nil {
		return err
	}
	defer tty.Close()

	mon := monitor.NewMonitor(m, os.Stdout)
	mon.ShowLog(*log)
	return mon.Run(tty)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Println(version.Version())
	return nil
}
