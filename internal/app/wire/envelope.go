/*
Package wire defines the JSON envelope exchanged with the chat server and the
codec that moves it on and off the wire.

Every frame is a single JSON document: an Envelope carrying a type tag and at
most one meaningful payload field. The codec is pure and stateless; it never
touches the connection.
*/
package wire

import (
	"encoding/json"

	"clack/internal/pkg/errs"
)

// MessageType is the envelope type tag.
type MessageType string

const (
	// TypeRegister announces the local user's display name to the server.
	// It carries the name in the Data field.
	TypeRegister MessageType = "register"

	// TypeUsers replaces the full roster. It carries the display names in
	// the DataArray field, in server order.
	TypeUsers MessageType = "users"

	// TypeMessage carries one chat message. Its Data field holds a nested
	// encoded ChatMessage document.
	TypeMessage MessageType = "message"
)

// Envelope is the top-level wire structure. Exactly one of Data/DataArray is
// meaningful per MessageType; the other is absent.
type Envelope struct {
	MessageType MessageType `json:"messageType"`         // type tag
	Data        *string     `json:"data,omitempty"`      // register/message payload
	DataArray   []string    `json:"dataArray,omitempty"` // users payload
}

// ChatMessage is the nested payload of a TypeMessage envelope's Data field.
type ChatMessage struct {
	From    string `json:"from"`    // sender display name
	Message string `json:"message"` // message text
}

// NewRegister builds a register envelope announcing the given display name.
func NewRegister(username string) Envelope {
	return Envelope{
		MessageType: TypeRegister,
		Data:        &username,
	}
}

// NewUsers builds a users envelope carrying the given roster names.
func NewUsers(names []string) Envelope {
	return Envelope{
		MessageType: TypeUsers,
		DataArray:   names,
	}
}

// NewChat builds a message envelope carrying the given text as its Data field.
// The server wraps outbound text into the nested ChatMessage form before
// echoing it back, so the client sends the raw text only.
func NewChat(text string) Envelope {
	return Envelope{
		MessageType: TypeMessage,
		Data:        &text,
	}
}

// Encode serializes the envelope to its wire text.
// It fails only on non-serializable input, which cannot occur for the closed
// variant set above.
func Encode(env Envelope) (string, error) {
	raw, err := json.Marshal(env)
	if err != nil {
		return "", errs.NewError(errs.ErrEnvelopeEncode)
	}
	return string(raw), nil
}

// Decode parses one wire frame into an Envelope.
// It fails when the text is not a well-formed JSON envelope or the
// messageType tag is not one of the three recognized values. Decoding a
// TypeMessage envelope does not parse the nested ChatMessage; that is a
// second step performed against Data via DecodeChatMessage.
func Decode(text string) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return Envelope{}, errs.NewError(errs.ErrEnvelopeDecode)
	}

	switch env.MessageType {
	case TypeRegister, TypeUsers, TypeMessage:
		return env, nil
	default:
		return Envelope{}, errs.NewError(errs.ErrEnvelopeDecode)
	}
}

// DecodeChatMessage parses the nested chat payload of a TypeMessage
// envelope's Data field. An absent or malformed payload fails with a
// payload-decode error.
func DecodeChatMessage(data *string) (ChatMessage, error) {
	if data == nil {
		return ChatMessage{}, errs.NewError(errs.ErrPayloadDecode)
	}

	var msg ChatMessage
	if err := json.Unmarshal([]byte(*data), &msg); err != nil {
		return ChatMessage{}, errs.NewError(errs.ErrPayloadDecode)
	}
	return msg, nil
}
