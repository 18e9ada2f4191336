package model

import (
	"encoding/json"
	"time"
)

// TimestampLayout renders UTC times with millisecond precision and a literal Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp serializes as TimestampLayout.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

func (t Timestamp) String() string {
	return time.Time(t).UTC().Format(TimestampLayout)
}
