package models

import "time"

// Activity is one recorded description of what the user did during a single
// hour slot. Hour is always floored to the top of the hour and acts as the
// logical key; RecordedAt is the wall-clock time of the write and breaks ties
// when duplicate physical rows exist for one slot (latest wins).
type Activity struct {
	ID         int64     `json:"id"`
	Hour       time.Time `json:"hour"`
	Text       string    `json:"activity"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}
