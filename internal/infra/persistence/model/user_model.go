package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 values assigned by the repository.
// The home location columns are either all set or all NULL.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Role         string    `gorm:"type:varchar(16);not null;default:user;check:chk_users_role,role IN ('user','admin')"`
	HomeLat      *float64  `gorm:"column:home_lat;check:chk_users_home_lat,home_lat BETWEEN -90 AND 90"`
	HomeLng      *float64  `gorm:"column:home_lng;check:chk_users_home_lng,home_lng BETWEEN -180 AND 180"`
	HomeAddress  *string   `gorm:"column:home_address;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
