package oob

// Telnet protocol constants used by OOB negotiation and input scrubbing.
const (
	IAC  byte = 255 // Interpret As Command
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250 // Subnegotiation Begin
	SE   byte = 240 // Subnegotiation End
	NOP  byte = 241

	TeloptGMCP byte = 201 // GMCP option number
	TeloptMSSP byte = 70  // MSSP option number
)

// MSSP subnegotiation type bytes.
const (
	MSSPVar byte = 1 // Variable name follows
	MSSPVal byte = 2 // Variable value follows
)
