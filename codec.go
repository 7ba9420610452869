package flash

import "encoding/json"

// Codec serializes message values to the bytes that ride in the flash
// cookie (or the server-side store) and back.
//
// Encode failures are programmer errors: the message type is not
// representable in the chosen format. Decode failures are expected at
// runtime (tampered or stale cookies) and are absorbed by the extractor.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// JSONCodec is the default codec. It wraps the value in a single-field
// envelope so bare scalars (strings, numbers) round-trip unambiguously:
//
//	"Saved!" -> {"_":"Saved!"}
type JSONCodec struct{}

type envelope struct {
	Value json.RawMessage `json:"_"`
}

// Encode marshals v into the envelope format.
func (JSONCodec) Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Value: raw})
}

// Decode unmarshals envelope-format data into v.
// Payloads without the envelope field are rejected.
func (JSONCodec) Decode(data []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if len(env.Value) == 0 {
		return ErrBadPayload
	}
	return json.Unmarshal(env.Value, v)
}

var _ Codec = JSONCodec{}
