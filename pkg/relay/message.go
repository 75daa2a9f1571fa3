package relay

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InboundMessage is a message arriving from Discord, headed for the game:
// a JSON object with the message text and the author's display name.
type InboundMessage struct {
	Txt  string `json:"txt"`
	User string `json:"user"`
}

// OutboundMessage is a message leaving the game for Discord. On the wire it
// is a two-element JSON array: [channel id, text].
type OutboundMessage struct {
	ChannelID string
	Text      string
}

// MarshalJSON encodes the message as the wire array form.
func (m OutboundMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{m.ChannelID, m.Text})
}

// UnmarshalJSON accepts the wire array form. The channel id may be a JSON
// string or number.
func (m *OutboundMessage) UnmarshalJSON(data []byte) error {
	var parts [2]json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("relay: outbound message: %w", err)
	}
	var id string
	if err := json.Unmarshal(parts[0], &id); err != nil {
		var num int64
		if err := json.Unmarshal(parts[0], &num); err != nil {
			return fmt.Errorf("relay: outbound channel id: %w", err)
		}
		id = fmt.Sprintf("%d", num)
	}
	var text string
	if err := json.Unmarshal(parts[1], &text); err != nil {
		return fmt.Errorf("relay: outbound text: %w", err)
	}
	m.ChannelID = id
	m.Text = text
	return nil
}

// FormatMessage fills a "{user} {message}"-style template.
func FormatMessage(format, user, message string) string {
	s := strings.ReplaceAll(format, "{user}", user)
	return strings.ReplaceAll(s, "{message}", message)
}
