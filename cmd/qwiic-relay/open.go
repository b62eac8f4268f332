package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	qwiic "github.com/ktheindifferent/qwiic-relay"
	"github.com/ktheindifferent/qwiic-relay/adapter"
	"github.com/ktheindifferent/qwiic-relay/cmd/qwiic-relay/console"
	"github.com/ktheindifferent/qwiic-relay/i2c"
	"github.com/ktheindifferent/qwiic-relay/relay"
)

// boardFlags are carried by every command that talks to a board.
var boardFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Value:   "mcp2221",
		Usage:   "bus adapter: mcp2221 or generic",
	},
	&cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Value:   "/dev/i2c-1",
		Usage:   "bus device used by the generic adapter",
	},
	&cli.StringFlag{
		Name:  "address",
		Value: "0x6D",
		Usage: "board I2C address",
	},
	&cli.UintFlag{
		Name:  "relays",
		Value: 4,
		Usage: "number of relays on the board",
	},
	&cli.StringFlag{
		Name:    "technology",
		Aliases: []string{"t"},
		Usage:   "relay technology for timing: standard, solid-state or mechanical",
	},
	&cli.StringFlag{
		Name:  "verification",
		Usage: "verification preset: strict, lenient or disabled",
	},
	&cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "YAML board profile (replaces address/relays/technology/verification)",
	},
}

func openTransport(ctx context.Context, c *cli.Context) (qwiic.I2CBus, func(), error) {
	switch c.String("adapter") {
	case "mcp2221":
		ad := adapter.NewMCP2221()
		if err := ad.Init(ctx); err != nil {
			return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return ad, func() {}, nil
	case "generic", "nanopi":
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, nil, fmt.Errorf("could not open bus: %w", err)
		}
		cleanup := func() {
			if err := bus.Close(); err != nil {
				console.Errorf("error closing bus: %s", console.Red(err))
			}
		}
		return bus, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
	}
}

func openBoard(ctx context.Context, c *cli.Context) (*relay.Board, func(), error) {
	addr, cfg, err := boardSetup(c)
	if err != nil {
		return nil, nil, err
	}
	transport, cleanup, err := openTransport(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return relay.NewBoard(transport, addr, relay.WithConfig(cfg)), cleanup, nil
}

func boardSetup(c *cli.Context) (byte, relay.Config, error) {
	if path := c.String("profile"); path != "" {
		profile, err := LoadProfile(path)
		if err != nil {
			return 0, relay.Config{}, err
		}
		addr, err := profile.Addr()
		if err != nil {
			return 0, relay.Config{}, err
		}
		cfg, err := profile.Config()
		if err != nil {
			return 0, relay.Config{}, err
		}
		return addr, cfg, nil
	}
	addr, err := parseAddress(c.String("address"))
	if err != nil {
		return 0, relay.Config{}, err
	}
	timing, err := timingForTechnology(c.String("technology"))
	if err != nil {
		return 0, relay.Config{}, err
	}
	verification, err := verificationForName(c.String("verification"))
	if err != nil {
		return 0, relay.Config{}, err
	}
	cfg := relay.Config{
		RelayCount:   uint8(c.Uint("relays")),
		Timing:       timing,
		Verification: verification,
	}
	if err = cfg.Validate(); err != nil {
		return 0, relay.Config{}, err
	}
	return addr, cfg, nil
}

// relayArg interprets the optional positional relay number; no argument
// targets the whole board the way single-relay boards are addressed.
func relayArg(c *cli.Context) (relay.Relay, error) {
	if c.Args().Len() == 0 {
		return relay.Unit, nil
	}
	n, err := strconv.ParseUint(c.Args().First(), 10, 8)
	if err != nil {
		return relay.Unit, fmt.Errorf("invalid relay number %q", c.Args().First())
	}
	return relay.Num(uint8(n)), nil
}
