package relay

// Status is a two-valued relay observation.
type Status uint8

const (
	Off Status = 0
	On  Status = 1
)

// StatusFromByte maps a raw status-register byte; the board reports any
// nonzero value as energized.
func StatusFromByte(b byte) Status {
	if b != 0 {
		return On
	}
	return Off
}

func StatusFromBool(on bool) Status {
	if on {
		return On
	}
	return Off
}

// Byte returns the canonical wire value: On is always 1, regardless of the
// byte it was parsed from.
func (s Status) Byte() byte {
	if s == On {
		return 1
	}
	return 0
}

func (s Status) Bool() bool { return s == On }

// Opposite returns the inverted status.
func (s Status) Opposite() Status {
	if s == On {
		return Off
	}
	return On
}

func (s Status) String() string {
	if s == On {
		return "ON"
	}
	return "OFF"
}
