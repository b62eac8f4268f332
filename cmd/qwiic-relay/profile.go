package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ktheindifferent/qwiic-relay/relay"
)

// Profile describes an attached board in a YAML file, so operators do not
// repeat address and policy flags on every invocation:
//
//	address: "0x6D"
//	relays: 4
//	technology: mechanical
//	verification: strict
//	max_retries: 5
//	timeout: 2s
type Profile struct {
	Address      string `yaml:"address"`
	Relays       uint8  `yaml:"relays"`
	Technology   string `yaml:"technology"`
	Verification string `yaml:"verification"`
	MaxRetries   *int   `yaml:"max_retries"`
	RetryDelay   string `yaml:"retry_delay"`
	Timeout      string `yaml:"timeout"`
}

func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read profile: %w", err)
	}
	var profile Profile
	if err = yaml.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("could not parse profile: %w", err)
	}
	if profile.Address == "" {
		profile.Address = "0x6D"
	}
	if profile.Relays == 0 {
		profile.Relays = 4
	}
	return &profile, nil
}

// Addr parses the profile's I2C address ("0x6D" or decimal).
func (p *Profile) Addr() (byte, error) {
	return parseAddress(p.Address)
}

// Config assembles the board configuration: technology picks the timing
// preset, verification the policy preset, and the optional fields override
// individual policy knobs.
func (p *Profile) Config() (relay.Config, error) {
	timing, err := timingForTechnology(p.Technology)
	if err != nil {
		return relay.Config{}, err
	}
	verification, err := verificationForName(p.Verification)
	if err != nil {
		return relay.Config{}, err
	}
	if p.MaxRetries != nil {
		verification = verification.WithMaxRetries(*p.MaxRetries)
	}
	if p.RetryDelay != "" {
		d, err := time.ParseDuration(p.RetryDelay)
		if err != nil {
			return relay.Config{}, fmt.Errorf("invalid retry_delay: %w", err)
		}
		verification = verification.WithRetryDelay(d)
	}
	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return relay.Config{}, fmt.Errorf("invalid timeout: %w", err)
		}
		verification = verification.WithTimeout(d)
	}
	cfg := relay.Config{
		RelayCount:   p.Relays,
		Timing:       timing,
		Verification: verification,
	}
	if err = cfg.Validate(); err != nil {
		return relay.Config{}, err
	}
	return cfg, nil
}

func parseAddress(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid I2C address %q", s)
	}
	if v < 0x08 || v > 0x77 {
		return 0, fmt.Errorf("I2C address %#04x outside the legal range 0x08-0x77", v)
	}
	return byte(v), nil
}

func timingForTechnology(name string) (relay.Timing, error) {
	switch name {
	case "", "standard":
		return relay.StandardTiming(), nil
	case "solid-state", "solidstate", "ssr":
		return relay.SolidStateTiming(), nil
	case "mechanical":
		return relay.MechanicalTiming(), nil
	default:
		return relay.Timing{}, fmt.Errorf("unknown relay technology %q", name)
	}
}

func verificationForName(name string) (relay.Verification, error) {
	switch name {
	case "", "strict":
		return relay.StrictVerification(), nil
	case "lenient":
		return relay.LenientVerification(), nil
	case "disabled", "none":
		return relay.NoVerification(), nil
	default:
		return relay.Verification{}, fmt.Errorf("unknown verification preset %q", name)
	}
}
