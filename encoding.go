package diem

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

func (d Diem) checkValid() error {
	if !d.IsValid() {
		return fmt.Errorf("%w: year %d out of range [%d, %d]", ErrInvalidDate, d.Year(), minYear, maxYear)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler. The form is YYYY-MM-DD.
func (d Diem) MarshalText() ([]byte, error) {
	if err := d.checkValid(); err != nil {
		return nil, err
	}
	return []byte(d.ISOString()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (d *Diem) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. The zero Diem is written as null.
func (d Diem) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	if err := d.checkValid(); err != nil {
		return nil, err
	}
	return json.Marshal(d.ISOString())
}

// UnmarshalJSON implements json.Unmarshaler. null and "" yield the zero
// Diem.
func (d *Diem) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Diem{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if s == "" {
		*d = Diem{}
		return nil
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler. The zero Diem is written as null.
func (d Diem) MarshalYAML() (any, error) {
	if d.IsZero() {
		return nil, nil
	}
	if err := d.checkValid(); err != nil {
		return nil, err
	}
	return d.ISOString(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. A null node or an empty string
// yields the zero Diem.
func (d *Diem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a scalar", ErrInvalidDate, value.Line)
	}
	if value.Tag == "!!null" || value.Value == "" {
		*d = Diem{}
		return nil
	}
	return d.UnmarshalText([]byte(value.Value))
}

// Value implements driver.Valuer. Dates are stored as YYYY-MM-DD and the
// zero Diem as NULL.
func (d Diem) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	if err := d.checkValid(); err != nil {
		return nil, err
	}
	return d.ISOString(), nil
}

// Scan implements sql.Scanner. Drivers returning time.Time for DATE columns
// are read in the zone the value carries; strings and bytes go through
// Parse, so DATETIME text is truncated to its date.
func (d *Diem) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Diem{}
		return nil
	case time.Time:
		*d = Diem{t: coerceUTC(v, nil)}
		return nil
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDate, src)
	}
}
