package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the identity attached to an OAuth login. Only allow-listed
// customers reach the admin surface.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:140;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:140" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
