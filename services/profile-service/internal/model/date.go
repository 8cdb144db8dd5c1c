package model

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Date is a point in time that also accepts a plain calendar date ("2006-01-02") in
// JSON. It is stored as a BSON datetime.
type Date time.Time

// NewDate returns d truncated to millisecond precision, the resolution of a BSON datetime.
func NewDate(t time.Time) Date {
	return Date(t.UTC().Truncate(time.Millisecond))
}

// Time returns d as a time.Time.
func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) Equal(other Date) bool {
	return d.Time().Equal(other.Time())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time().Format(time.RFC3339Nano))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDate(t)
			return nil
		}
	}

	return fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
}

func (d Date) MarshalBSONValue() (byte, []byte, error) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(d.Time().UnixMilli()))
	return byte(bson.TypeDateTime), buf, nil
}

func (d *Date) UnmarshalBSONValue(typ byte, data []byte) error {
	switch bson.Type(typ) {
	case bson.TypeNull, bson.TypeUndefined:
		*d = Date{}
		return nil
	case bson.TypeDateTime:
		if len(data) != 8 {
			return fmt.Errorf("invalid BSON datetime length %d", len(data))
		}
		millis := int64(binary.LittleEndian.Uint64(data))
		*d = Date(time.UnixMilli(millis).UTC())
		return nil
	default:
		return fmt.Errorf("cannot decode BSON type %s into Date", bson.Type(typ))
	}
}
