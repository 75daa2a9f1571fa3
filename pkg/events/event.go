package events

import "github.com/crystal-mush/mudbits/pkg/gamedb"

// EventType classifies events for transport-specific encoding.
type EventType int

const (
	EvText       EventType = iota // Raw text (universal fallback)
	EvSay                         // Speech
	EvPose                        // Pose/emote
	EvChannel                     // Channel message
	EvRoom                        // Room description
	EvMove                        // Arrive/depart
	EvWear                        // Clothing worn/removed/covered
	EvDecor                       // Room decor changed
	EvGrowth                      // Object grew into a new stage
	EvConnect                     // Player connected
	EvDisconnect                  // Player disconnected
	EvPrompt                      // Interactive prompt (multimatch menus)
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EvText:
		return "text"
	case EvSay:
		return "say"
	case EvPose:
		return "pose"
	case EvChannel:
		return "channel"
	case EvRoom:
		return "room"
	case EvMove:
		return "move"
	case EvWear:
		return "wear"
	case EvDecor:
		return "decor"
	case EvGrowth:
		return "growth"
	case EvConnect:
		return "connect"
	case EvDisconnect:
		return "disconnect"
	case EvPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// Event is a structured game event that flows through the event bus.
// Telnet descriptors use the pre-formatted Text; the WebSocket transport
// and the channel journal use the full structure.
type Event struct {
	Type    EventType
	Player  gamedb.DBRef   // Recipient (Nothing for broadcast)
	Source  gamedb.DBRef   // Who generated the event
	Room    gamedb.DBRef   // Room context
	Channel string         // Channel name (EvChannel)
	Text    string         // Pre-formatted text
	Data    map[string]any // Structured data for JSON clients
}
