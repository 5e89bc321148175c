package models

import "time"

// RevokedToken marks a signed-out session token as unusable until it would
// have expired anyway.
type RevokedToken struct {
	TokenID   string
	UserID    string
	ExpiresAt time.Time
}
