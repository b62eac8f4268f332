package relay

import "fmt"

// Relay identifies the target of an operation: an explicit 1-based relay
// number, or the whole board (Unit) on single-relay boards. The two forms
// use different command and status bytes on the wire, so this is a protocol
// distinction rather than a default argument.
type Relay struct {
	num      uint8
	numbered bool
}

// Unit addresses single-relay boards through the whole-board command set.
// It bypasses relay-count validation.
var Unit = Relay{}

// Num identifies relay n (1-based). Num(0) is not Unit; it fails validation
// like any other out-of-range number.
func Num(n uint8) Relay {
	return Relay{num: n, numbered: true}
}

func (r Relay) IsUnit() bool { return !r.numbered }

// Number returns the explicit relay number, 0 for Unit.
func (r Relay) Number() uint8 { return r.num }

func (r Relay) String() string {
	if r.numbered {
		return fmt.Sprintf("relay %d", r.num)
	}
	return "relay"
}
