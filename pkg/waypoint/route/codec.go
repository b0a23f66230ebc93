package route

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tidwall/gjson"
)

// envelope is the serialised form of an Any: {"type": id, "payload": ...}.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Marshal serialises a route through the encoder registered for its type.
func (r *Registry) Marshal(a Any) ([]byte, error) {
	env, err := r.envelope(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

func (r *Registry) envelope(a Any) (envelope, error) {
	enc, ok := r.Encoder(a.typeID)
	if !ok {
		return envelope{}, &RouteError{Op: "marshal", TypeID: a.typeID, Err: ErrUnregisteredType}
	}
	payload, err := enc(a.value)
	if err != nil {
		return envelope{}, &RouteError{Op: "marshal", TypeID: a.typeID, Err: err}
	}
	return envelope{Type: a.typeID, Payload: payload}, nil
}

// Unmarshal restores a route serialised by Marshal.
func (r *Registry) Unmarshal(data []byte) (Any, error) {
	if !gjson.ValidBytes(data) {
		return Any{}, &RouteError{Op: "unmarshal", Err: ErrMalformedEnvelope}
	}
	return r.decodeEnvelope(gjson.ParseBytes(data))
}

func (r *Registry) decodeEnvelope(env gjson.Result) (Any, error) {
	typ := env.Get("type")
	payload := env.Get("payload")
	if typ.Type != gjson.String || !payload.Exists() {
		return Any{}, &RouteError{Op: "unmarshal", Err: ErrMalformedEnvelope}
	}

	dec, ok := r.Decoder(typ.Str)
	if !ok {
		return Any{}, &RouteError{Op: "unmarshal", TypeID: typ.Str, Err: ErrUnregisteredType}
	}
	v, err := dec([]byte(payload.Raw))
	if err != nil {
		return Any{}, &RouteError{Op: "unmarshal", TypeID: typ.Str, Err: err}
	}
	if v != nil && !reflect.TypeOf(v).Comparable() {
		return Any{}, &RouteError{Op: "unmarshal", TypeID: typ.Str, Err: fmt.Errorf("decoded %T is not comparable", v)}
	}
	return Any{typeID: typ.Str, value: v}, nil
}

// MarshalStack serialises a whole navigation stack as a JSON array of
// envelopes. It fails on the first unregistered route.
func (r *Registry) MarshalStack(routes []Any) ([]byte, error) {
	envs := make([]envelope, 0, len(routes))
	for _, a := range routes {
		env, err := r.envelope(a)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return json.Marshal(envs)
}

// UnmarshalStack restores a stack serialised by MarshalStack.
func (r *Registry) UnmarshalStack(data []byte) ([]Any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &RouteError{Op: "unmarshal", Err: ErrMalformedEnvelope}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, &RouteError{Op: "unmarshal", Err: ErrMalformedEnvelope}
	}

	var (
		routes []Any
		err    error
	)
	doc.ForEach(func(_, env gjson.Result) bool {
		var a Any
		if a, err = r.decodeEnvelope(env); err != nil {
			return false
		}
		routes = append(routes, a)
		return true
	})
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []Any{}
	}
	return routes, nil
}
