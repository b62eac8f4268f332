package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ktheindifferent/qwiic-relay/cmd/qwiic-relay/console"
)

var setAddressCmd = cli.Command{
	Name:      "set-address",
	Usage:     "permanently move the board to a new I2C address",
	ArgsUsage: "<new address>",
	Flags:     boardFlags,
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return console.Exit(1, "usage: set-address <new address>")
		}
		newAddr, err := parseAddress(c.Args().First())
		if err != nil {
			return console.Fail("argument error", err)
		}
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		board, cleanup, err := openBoard(ctx, c)
		if err != nil {
			return console.Fail("setup error", err)
		}
		defer cleanup()
		console.Warnf("this writes %#04x into the non-volatile storage of the board at %#04x and cannot be undone from this handle",
			newAddr, board.Addr())
		ok, err := console.Confirm("continue?")
		if err != nil {
			return console.Fail("prompt error", err)
		}
		if !ok {
			console.Info("aborted")
			return nil
		}
		if err = board.ChangeAddress(ctx, newAddr); err != nil {
			return console.Fail("address change error", err)
		}
		console.PInfof(console.PictoKey, "address changed; reopen the board with --address %s",
			console.White(fmt.Sprintf("%#04x", newAddr)))
		return nil
	},
}
