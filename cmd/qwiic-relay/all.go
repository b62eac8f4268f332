package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/ktheindifferent/qwiic-relay/cmd/qwiic-relay/console"
	"github.com/ktheindifferent/qwiic-relay/relay"
)

var allCmd = cli.Command{
	Name:  "all",
	Usage: "drive every relay at once",
	Subcommands: cli.Commands{
		&allOnCmd,
		&allOffCmd,
		&allToggleCmd,
	},
}

var allOnCmd = cli.Command{
	Name:  "on",
	Flags: boardFlags,
	Action: func(c *cli.Context) error {
		return allAction(c, func(ctx context.Context, b *relay.Board) error {
			return b.SetAll(ctx, relay.On)
		}, "all relays "+console.State(true))
	},
}

var allOffCmd = cli.Command{
	Name:  "off",
	Flags: boardFlags,
	Action: func(c *cli.Context) error {
		return allAction(c, func(ctx context.Context, b *relay.Board) error {
			return b.SetAll(ctx, relay.Off)
		}, "all relays "+console.State(false))
	},
}

var allToggleCmd = cli.Command{
	Name:  "toggle",
	Flags: boardFlags,
	Action: func(c *cli.Context) error {
		return allAction(c, func(ctx context.Context, b *relay.Board) error {
			return b.ToggleAll(ctx)
		}, "all relays inverted")
	},
}

func allAction(c *cli.Context, run func(context.Context, *relay.Board) error, done string) error {
	ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
	board, cleanup, err := openBoard(ctx, c)
	if err != nil {
		return console.Fail("setup error", err)
	}
	defer cleanup()
	if err = run(ctx, board); err != nil {
		return console.Fail("switching error", err)
	}
	console.PInfof(console.PictoBolt, "%s", done)
	return nil
}
