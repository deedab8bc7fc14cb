package protocol

import "encoding/json"

// Envelope is the standard WebSocket message wrapper. ID pairs a request
// from the server with the client's answer; it is empty otherwise.
type Envelope struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope creates an envelope with a JSON-encoded payload.
func NewEnvelope(typ string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// NewRequest is NewEnvelope for a message that expects an answer.
func NewRequest(typ, id string, payload any) (Envelope, error) {
	env, err := NewEnvelope(typ, payload)
	env.ID = id
	return env, err
}

// MustEnvelope is like NewEnvelope but panics on error.
func MustEnvelope(typ string, payload any) Envelope {
	e, err := NewEnvelope(typ, payload)
	if err != nil {
		panic(err)
	}
	return e
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}
