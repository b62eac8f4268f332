package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/ktheindifferent/qwiic-relay/cmd/qwiic-relay/console"
)

var versionCmd = cli.Command{
	Name:  "version",
	Usage: "read the board's firmware version",
	Flags: boardFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		board, cleanup, err := openBoard(ctx, c)
		if err != nil {
			return console.Fail("setup error", err)
		}
		defer cleanup()
		version, err := board.GetFirmwareVersion(ctx)
		if err != nil {
			return console.Fail("read error", err)
		}
		console.PInfof(console.PictoPin, "firmware version %d", version)
		return nil
	},
}

var initCmd = cli.Command{
	Name:  "init",
	Usage: "wait out the board's power-on settle time and confirm it responds",
	Flags: boardFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		board, cleanup, err := openBoard(ctx, c)
		if err != nil {
			return console.Fail("setup error", err)
		}
		defer cleanup()
		if err = board.Init(ctx); err != nil {
			return console.Fail("init error", err)
		}
		version, err := board.GetFirmwareVersion(ctx)
		if err != nil {
			return console.Fail("board not responding", err)
		}
		console.PInfof(console.PictoFinish, "board ready, firmware %d", version)
		return nil
	},
}

var detectCmd = cli.Command{
	Name:  "detect",
	Usage: "probe the board and adopt the timing preset for its relay technology",
	Flags: boardFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		board, cleanup, err := openBoard(ctx, c)
		if err != nil {
			return console.Fail("setup error", err)
		}
		defer cleanup()
		adjusted, err := board.AutoDetectTiming(ctx)
		if err != nil {
			return console.Fail("probe error", err)
		}
		if !adjusted {
			console.Warnf("address %#04x is not a factory default; timing left unchanged", board.Addr())
			return nil
		}
		timing := board.Config().Timing
		console.PInfof(console.PictoWrench, "timing adopted: write %s, state change %s, init %s",
			timing.WriteDelay, timing.StateChangeDelay, timing.InitDelay)
		return nil
	},
}
