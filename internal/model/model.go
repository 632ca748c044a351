// Package model holds the database models of the blog and the request
// payloads the API binds into.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NextID returns a 50 character, time ordered id: 15 digits of unix
// milliseconds, 32 hex digits of a random uuid, then "000".
func NextID() string {
	return nextID(time.Now())
}

func nextID(now time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("%015d%x000", now.UnixMilli(), u[:])
}
