package models

import "time"

// Profile is one learner. Sessions and progress hang off a profile;
// selecting one is handled with a cookie, not authentication.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
