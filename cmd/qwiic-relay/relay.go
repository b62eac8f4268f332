package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/ktheindifferent/qwiic-relay/cmd/qwiic-relay/console"
	"github.com/ktheindifferent/qwiic-relay/relay"
)

var onCmd = cli.Command{
	Name:      "on",
	Usage:     "switch a relay on",
	ArgsUsage: "[relay number]",
	Flags:     boardFlags,
	Action: func(c *cli.Context) error {
		return switchAction(c, relay.On)
	},
}

var offCmd = cli.Command{
	Name:      "off",
	Usage:     "switch a relay off",
	ArgsUsage: "[relay number]",
	Flags:     boardFlags,
	Action: func(c *cli.Context) error {
		return switchAction(c, relay.Off)
	},
}

func switchAction(c *cli.Context, desired relay.Status) error {
	ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
	r, err := relayArg(c)
	if err != nil {
		return console.Fail("argument error", err)
	}
	board, cleanup, err := openBoard(ctx, c)
	if err != nil {
		return console.Fail("setup error", err)
	}
	defer cleanup()
	if err = board.Set(ctx, r, desired); err != nil {
		return console.Fail("switching error", err)
	}
	console.PInfof(console.PictoBolt, "%s %s", r, console.State(desired.Bool()))
	return nil
}

var toggleCmd = cli.Command{
	Name:      "toggle",
	Usage:     "invert a relay's state",
	ArgsUsage: "[relay number]",
	Flags:     boardFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		r, err := relayArg(c)
		if err != nil {
			return console.Fail("argument error", err)
		}
		board, cleanup, err := openBoard(ctx, c)
		if err != nil {
			return console.Fail("setup error", err)
		}
		defer cleanup()
		if err = board.Toggle(ctx, r); err != nil {
			return console.Fail("switching error", err)
		}
		state, err := board.GetState(ctx, r)
		if err != nil {
			return console.Fail("read-back error", err)
		}
		console.PInfof(console.PictoBolt, "%s %s", r, console.State(state.Bool()))
		return nil
	},
}

var statusCmd = cli.Command{
	Name:      "status",
	Usage:     "read relay state",
	ArgsUsage: "[relay number]",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{Name: "all", Usage: "walk every relay on the board"},
	}, boardFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		board, cleanup, err := openBoard(ctx, c)
		if err != nil {
			return console.Fail("setup error", err)
		}
		defer cleanup()
		if c.Bool("all") {
			for n := 1; n <= int(board.Config().RelayCount); n++ {
				state, err := board.GetState(ctx, relay.Num(uint8(n)))
				if err != nil {
					return console.Fail("read error", err)
				}
				console.Printf("relay %d\t%s\n", n, console.State(state.Bool()))
			}
			return nil
		}
		r, err := relayArg(c)
		if err != nil {
			return console.Fail("argument error", err)
		}
		state, err := board.GetState(ctx, r)
		if err != nil {
			return console.Fail("read error", err)
		}
		console.PInfof(console.PictoPin, "%s %s", r, console.State(state.Bool()))
		return nil
	},
}
