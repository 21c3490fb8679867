// This file is part of GopherVec.
//
// GopherVec is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherVec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherVec.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/jetsetilly/gophervec/hardware"
	"github.com/jetsetilly/gophervec/hardware/cpu"
	"github.com/jetsetilly/gophervec/hardware/psg"
	"github.com/jetsetilly/gophervec/hardware/video"
	"github.com/jetsetilly/gophervec/logger"
	"github.com/jetsetilly/gophervec/sdlaudio"
	"github.com/jetsetilly/gophervec/statsview"
	"github.com/jetsetilly/gophervec/wavwriter"
)

func main() {
	app := cli.NewApp()
	app.Name = "gophervec"
	app.Usage = "Vectrex console emulation core"
	app.ArgsUsage = "[cartridge]"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "path to the 8K system ROM (required)",
		},
		cli.StringFlag{
			Name:  "wav",
			Usage: "write PSG output to a WAV file instead of the audio device",
		},
		cli.BoolFlag{
			Name:  "silent",
			Usage: "run without sound output",
		},
		cli.BoolFlag{
			Name:  "warp",
			Usage: "run as fast as possible (implies no sound)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "run for the specified number of frames and exit; 0 means run until interrupted",
		},
		cli.BoolFlag{
			Name:  "log",
			Usage: "echo the application log to stdout",
		},
		cli.BoolFlag{
			Name:  "stats",
			Usage: "launch the statistics server (requires the statsview build tag)",
		},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}

func run(c *cli.Context) error {
	if c.Bool("log") {
		logger.SetEcho(os.Stdout, true)
	}

	if c.Bool("stats") {
		statsview.Launch(os.Stdout)
	}

	romFile := c.String("rom")
	if romFile == "" {
		return fmt.Errorf("no system ROM specified (use -rom)")
	}
	rom, err := ioutil.ReadFile(romFile)
	if err != nil {
		return err
	}

	var cart []uint8
	if c.NArg() > 0 {
		cart, err = ioutil.ReadFile(c.Args().Get(0))
		if err != nil {
			return err
		}
	}

	sink := selectSink(c)

	// the MC6809 core is pluggable. until one is attached the console runs
	// with a stub processor, which is enough to exercise the chip set but
	// will not boot the executive
	mac, err := hardware.NewMachine(cpu.NewStub(), rom, cart, sink)
	if err != nil {
		return err
	}
	defer func() {
		if err := mac.Dispose(); err != nil {
			logger.Logf("gophervec", "%v", err)
		}
	}()

	if n := c.Int("frames"); n > 0 {
		for i := 0; i < n; i++ {
			frame := mac.RunUntilFrame(c.Bool("warp"))
			if frame != nil {
				frame.Phosphors.Decay()
			}
		}
		return nil
	}

	runner := hardware.NewRunner(mac, func(frame *video.Frame) {
		// stand-in for a renderer: fade the phosphor trail once per frame
		frame.Phosphors.Decay()
	})
	runner.SetWarpSpeed(c.Bool("warp"))

	done := make(chan struct{})
	go func() {
		runner.Run()
		close(done)
	}()
	runner.Resume()

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	<-intr

	runner.Stop()
	<-done

	return nil
}

// selectSink chooses the PSG sample sink from the command line options. A
// nil return means silent mode.
func selectSink(c *cli.Context) psg.SampleSink {
	if c.Bool("silent") {
		return nil
	}

	if fn := c.String("wav"); fn != "" {
		aw, err := wavwriter.New(fn)
		if err != nil {
			logger.Logf("gophervec", "%v", err)
			return nil
		}
		return aw
	}

	aud, err := sdlaudio.New()
	if err != nil {
		// no audio device; the PSG proceeds in silent mode
		logger.Logf("gophervec", "%v", err)
		return nil
	}
	return aud
}
