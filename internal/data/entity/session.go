package entity

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	BaseSimple
	ProfileID uuid.UUID  `db:"profile_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
