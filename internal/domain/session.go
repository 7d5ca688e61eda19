package domain

import "time"

// AuthSession is the signed-in user's bearer token as stored on this machine.
type AuthSession struct {
	Token     string
	UserName  string
	UserEmail string
	CreatedAt time.Time
}
