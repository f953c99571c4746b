package booking

import "encoding/json"

// The Opt types track JSON field presence for partial updates. A plain
// pointer cannot tell "key absent" apart from "key set to null", and the
// update contract treats those differently (omitted fields keep their stored
// value, explicit nulls clear or re-derive it). Set is true when the key
// appeared in the payload at all; Valid is true when it carried a non-null
// value.

// OptFloat is an optional JSON number.
type OptFloat struct {
	Set   bool
	Valid bool
	Value float64
}

func (o *OptFloat) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptUint is an optional JSON unsigned integer.
type OptUint struct {
	Set   bool
	Valid bool
	Value uint64
}

func (o *OptUint) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptBool is an optional JSON boolean.
type OptBool struct {
	Set   bool
	Valid bool
	Value bool
}

func (o *OptBool) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptString is an optional JSON string.
type OptString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
