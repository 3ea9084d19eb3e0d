package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Field is one named value of a record.
type Field struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Fields is an ordered mapping from field name to value.
// The JSON form is a plain object whose key order is kept on both encode and decode.
type Fields []Field

// Record is one row of tabular data. RID is the stable identity used for selection,
// ID is only set for records loaded from the database.
type Record struct {
	ID     int       `json:"id,omitempty"`
	RID    uuid.UUID `json:"rid"`
	Fields Fields    `json:"fields"`
}

// NewRecord creates a record with a fresh RID.
func NewRecord(fields ...Field) Record {
	return Record{
		RID:    uuid.New(),
		Fields: Fields(fields),
	}
}

func (r Record) Keys() []string {
	return r.Fields.Keys()
}

func (r Record) Get(key string) (any, bool) {
	return r.Fields.Get(key)
}

// ToIdentifier returns the RID as string, used for DOM ids and form values.
func (r Record) ToIdentifier() string {
	return r.RID.String()
}

func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, field := range f {
		keys = append(keys, field.Key)
	}
	return keys
}

func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

func (f Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Set replaces the value of key or appends it as the last field.
func (f *Fields) Set(key string, value any) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

func (f Fields) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", field.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order of the document.
// Numbers are kept as json.Number so integer precision is not lost.
func (f *Fields) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token == nil {
		*f = nil
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.New("fields must be a JSON object")
	}

	fields := Fields{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("invalid field key %v", token)
		}

		var value any
		err = decoder.Decode(&value)
		if err != nil {
			return fmt.Errorf("decode field %s: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: value})
	}

	_, err = decoder.Token()
	if err != nil {
		return err
	}

	*f = fields
	return nil
}

func (f Fields) Value() (driver.Value, error) {
	data, err := f.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (f *Fields) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return f.UnmarshalJSON(v)
	case string:
		return f.UnmarshalJSON([]byte(v))
	case nil:
		*f = nil
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
}
