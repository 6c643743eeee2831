package models

import "time"

// Token is the thermostat provider credential. Only one row ever exists.
type Token struct {
	ID           int       `json:"-" db:"id"`
	AccessToken  string    `json:"access_token" db:"access_token"`
	RefreshToken string    `json:"refresh_token" db:"refresh_token"`
	Expires      time.Time `json:"expires" db:"expires"`
}

// Expired reports whether the token is no longer usable at now.
func (t Token) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}
