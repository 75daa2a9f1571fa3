// Package oob implements out-of-band protocol support for MUD clients:
// GMCP (Generic MUD Communication Protocol) for structured event data and
// MSSP (MUD Server Status Protocol) for server metadata, both carried in
// telnet subnegotiations alongside normal text output.
package oob

// Capabilities tracks which OOB protocols a connection has negotiated.
type Capabilities struct {
	GMCP bool // GMCP (telopt 201) negotiated
	MSSP bool // MSSP (telopt 70) negotiated

	// GMCP package subscriptions from the client, when it sends
	// Core.Supports.Set. Empty means everything.
	GMCPPackages map[string]bool
}

// NewCapabilities returns a zero-value Capabilities (nothing negotiated).
func NewCapabilities() *Capabilities {
	return &Capabilities{
		GMCPPackages: make(map[string]bool),
	}
}

// HasAny returns true if any OOB protocol is negotiated.
func (c *Capabilities) HasAny() bool {
	return c.GMCP || c.MSSP
}

// WantsPackage reports whether the client subscribed to a GMCP package.
// With no explicit subscriptions every package is wanted.
func (c *Capabilities) WantsPackage(pkg string) bool {
	if len(c.GMCPPackages) == 0 {
		return true
	}
	return c.GMCPPackages[pkg]
}
