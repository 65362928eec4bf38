package models

import "encoding/json"

// OptString is a tri-state JSON string: absent, null, or a value.
// UnmarshalJSON only runs for keys present in the payload, so Set is
// false exactly when the field was omitted.
type OptString struct {
	Set   bool
	Valid bool
	Value string
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		o.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OptString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// String returns a set OptString carrying the given value.
func String(v string) OptString {
	return OptString{Set: true, Valid: true, Value: v}
}

// Null returns a set OptString carrying an explicit null.
func Null() OptString {
	return OptString{Set: true}
}

// Ptr returns the value as a nullable pointer, nil for an explicit null.
func (o OptString) Ptr() *string {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
