package gamedb

// Channel represents a comsys channel definition.
type Channel struct {
	Name        string
	Owner       DBRef
	Description string
	Header      string  // ANSI header prefix for messages
	Members     []DBRef // subscribed players and bots
	NumSent     int
}

// IsMember reports whether ref is subscribed to the channel.
func (c *Channel) IsMember(ref DBRef) bool {
	for _, m := range c.Members {
		if m == ref {
			return true
		}
	}
	return false
}

// Join subscribes ref to the channel.
func (c *Channel) Join(ref DBRef) {
	if c.IsMember(ref) {
		return
	}
	c.Members = append(c.Members, ref)
}

// Leave unsubscribes ref from the channel.
func (c *Channel) Leave(ref DBRef) {
	for i, m := range c.Members {
		if m == ref {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			return
		}
	}
}
