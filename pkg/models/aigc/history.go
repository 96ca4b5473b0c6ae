package aigc

import "encoding/json"

// roles of a conversation turn
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of a conversation, immutable once appended.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	// Ts unix epoch in milliseconds
	Ts int64 `json:"ts"`
}

type Turns []Turn

// Messages strips timestamps for a prompt sequence.
func (z Turns) Messages() Messages {
	out := make(Messages, 0, len(z))
	for _, t := range z {
		out = append(out, Message{Role: t.Role, Content: t.Content})
	}
	return out
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (z *Turn) MarshalBinary() (data []byte, err error) {
	data, err = json.Marshal(z)
	return
}

// UnmarshalBinary unmarshal a binary representation of itself. for redis result.Scan
func (z *Turn) UnmarshalBinary(data []byte) error {
	var t Turn
	err := json.Unmarshal(data, &t)
	if err == nil {
		*z = t
	}
	return err
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (z Turns) MarshalBinary() (data []byte, err error) {
	data, err = json.Marshal(z)
	return
}

// UnmarshalBinary unmarshal a binary representation of itself. for redis result.Scan
func (z *Turns) UnmarshalBinary(data []byte) error {
	var t Turns
	err := json.Unmarshal(data, &t)
	if err == nil {
		*z = t
	}
	return err
}
