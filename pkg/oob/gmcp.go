package oob

import (
	"encoding/json"
	"fmt"

	"github.com/crystal-mush/mudbits/pkg/events"
)

// GMCPPackage maps event types to GMCP package names. Types with no
// structured client-side meaning map to "".
func GMCPPackage(evType events.EventType) string {
	switch evType {
	case events.EvSay, events.EvPose:
		return "Comm.Room.Text"
	case events.EvChannel:
		return "Comm.Channel.Text"
	case events.EvRoom, events.EvMove, events.EvDecor:
		return "Room.Info"
	case events.EvWear:
		return "Char.Items"
	case events.EvGrowth:
		return "Room.Update"
	case events.EvConnect:
		return "Char.Login"
	case events.EvDisconnect:
		return "Char.Logout"
	default:
		return ""
	}
}

// EncodeGMCP encodes an event as a GMCP telnet subnegotiation.
// Format: IAC SB 201 <package> <space> <json> IAC SE.
// Returns nil if the event has no GMCP mapping or no structured data.
func EncodeGMCP(ev events.Event) []byte {
	pkg := GMCPPackage(ev.Type)
	if pkg == "" || ev.Data == nil {
		return nil
	}
	jsonData, err := json.Marshal(ev.Data)
	if err != nil {
		return nil
	}
	payload := fmt.Sprintf("%s %s", pkg, jsonData)
	buf := make([]byte, 0, len(payload)+5)
	buf = append(buf, IAC, SB, TeloptGMCP)
	buf = append(buf, []byte(payload)...)
	buf = append(buf, IAC, SE)
	return buf
}

// ParseGMCPMessage splits an incoming GMCP subnegotiation payload (the raw
// bytes between SB 201 and IAC SE) into package name and JSON data.
func ParseGMCPMessage(data []byte) (pkg string, jsonData []byte) {
	for i, b := range data {
		if b == ' ' {
			return string(data[:i]), data[i+1:]
		}
	}
	return string(data), nil
}
