package relay

// Factory-default I2C addresses of the SparkFun Qwiic Relay family. The
// JumperClosed variants apply when the on-board address jumper is closed.
const (
	SingleRelayDefault         byte = 0x18
	SingleRelayJumperClosed    byte = 0x19
	QuadRelayDefault           byte = 0x6D
	QuadRelayJumperClosed      byte = 0x6C
	DualSolidState             byte = 0x0A
	DualSolidStateJumperClosed byte = 0x0B
	QuadSolidState             byte = 0x08
	QuadSolidStateJumperClosed byte = 0x09
)

// Command map (single-byte writes).
const (
	cmdToggleBase byte = 0x00 // relay N toggles at cmdToggleBase + N
	cmdSingleOff  byte = 0x00
	cmdSingleOn   byte = 0x01
	cmdAllOff     byte = 0x0A
	cmdAllOn      byte = 0x0B
	cmdToggleAll  byte = 0x0C
	cmdChangeAddr byte = 0xC7 // followed by the new 7-bit address
)

// Register map (write the register byte, read one byte back).
const (
	regVersion    byte = 0x04
	regUnitStatus byte = 0x05 // whole-board status on single-relay boards
	regStatusBase byte = 0x04 // relay N status at regStatusBase + N
)

// Legal 7-bit address range accepted by ChangeAddress. Values outside
// collide with addresses reserved by the I2C specification.
const (
	addrMin byte = 0x08
	addrMax byte = 0x77
)
