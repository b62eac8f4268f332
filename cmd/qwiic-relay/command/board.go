package command

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/drivers/i2c"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/ktheindifferent/qwiic-relay/cmd/qwiic-relay/console"
)

// BoardCmd drives a relay board through the platform adaptor instead of the
// regular transports, for bring-up on boards wired straight to the SoC bus.
var BoardCmd = &cli.Command{
	Name:  "board",
	Usage: "raw board access through the platform adaptor",
	Subcommands: []*cli.Command{
		BoardExerciseCmd,
		BoardReadCmd,
	},
}

var boardAccessFlags = []cli.Flag{
	&cli.IntFlag{Name: "bus", Value: 0, Usage: "adaptor I2C bus number"},
	&cli.IntFlag{Name: "address", Value: 0x6D, Usage: "board I2C address"},
	&cli.IntFlag{Name: "relays", Value: 4, Usage: "number of relays on the board"},
}

var BoardExerciseCmd = &cli.Command{
	Name:  "exercise",
	Usage: "cycle every relay through a toggle pair",
	Flags: append([]cli.Flag{
		&cli.DurationFlag{Name: "pause", Value: 500 * time.Millisecond, Usage: "dwell between toggles"},
	}, boardAccessFlags...),
	Action: func(c *cli.Context) error {
		board, done, err := openRawBoard(c)
		if err != nil {
			return err
		}
		defer done()
		pause := c.Duration("pause")
		for n := 1; n <= c.Int("relays"); n++ {
			// two toggles return the relay to where it started
			for cycle := 0; cycle < 2; cycle++ {
				if err := board.Write([]byte{byte(n)}); err != nil {
					slog.Error("toggle write error", "relay", n, "error", err)
					continue
				}
				time.Sleep(pause)
			}
			fmt.Printf("relay %s cycled\n", console.White(n))
		}
		return nil
	},
}

var BoardReadCmd = &cli.Command{
	Name:  "read",
	Usage: "dump raw status registers",
	Flags: boardAccessFlags,
	Action: func(c *cli.Context) error {
		board, done, err := openRawBoard(c)
		if err != nil {
			return err
		}
		defer done()
		data := make([]byte, 1)
		for n := 1; n <= c.Int("relays"); n++ {
			// status of relay N lives at 0x04 + N
			reg := byte(0x04 + n)
			if err := board.Write([]byte{reg}); err != nil {
				slog.Error("register select error", "register", reg, "error", err)
				continue
			}
			if err := board.Read(data); err != nil {
				slog.Error("register read error", "register", reg, "error", err)
				continue
			}
			fmt.Printf("register %s: %s\n",
				console.White(fmt.Sprintf("%#04x", reg)), console.White(fmt.Sprintf("%#02x", data[0])))
		}
		return nil
	},
}

func openRawBoard(c *cli.Context) (*i2c.GenericDriver, func(), error) {
	npi := nanopi.NewNeoAdaptor()
	err := npi.I2cBusAdaptor.Connect()
	if err != nil {
		return nil, nil, fmt.Errorf("adaptor connect error: %w", err)
	}
	board := i2c.NewGenericDriver(npi, "qwiic-relay", c.Int("address"), func(cfg i2c.Config) {
		cfg.SetBus(c.Int("bus"))
	})
	if err = board.Start(); err != nil {
		_ = npi.I2cBusAdaptor.Finalize()
		return nil, nil, fmt.Errorf("driver start error: %w", err)
	}
	done := func() {
		_ = board.Halt()
		_ = npi.I2cBusAdaptor.Finalize()
	}
	return board, done, nil
}
