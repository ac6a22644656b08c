package models

import "encoding/json"

// Optional is a patch field that distinguishes the three JSON cases:
// omitted (Set=false, keep stored value), explicit null (Null=true,
// clear the stored value) and a concrete value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// HasValue reports whether the field carries a concrete value.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}
