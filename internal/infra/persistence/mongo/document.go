package mongo

import (
	"time"

	"bathroom/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

const geoJSONPoint = "Point"

// userDocument is the stored shape of a user. The _id is the UUID string.
type userDocument struct {
	ID           string            `bson:"_id"`
	Email        string            `bson:"email"`
	PasswordHash string            `bson:"password,omitempty"`
	Name         string            `bson:"name"`
	Role         string            `bson:"role"`
	HomeLocation *locationDocument `bson:"homeLocation,omitempty"`
	CreatedAt    time.Time         `bson:"createdAt"`
	UpdatedAt    time.Time         `bson:"updatedAt"`
}

type locationDocument struct {
	Point   pointDocument `bson:"point"`
	Address string        `bson:"address"`
}

// pointDocument is a GeoJSON point, coordinates in (lng, lat) order.
type pointDocument struct {
	Type        string    `bson:"type"`
	Coordinates orb.Point `bson:"coordinates"`
}

func fromUserDomain(user *entity.User) *userDocument {
	doc := &userDocument{
		ID:           user.ID.String(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Role:         user.Role.String(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if loc := user.HomeLocation; loc != nil {
		doc.HomeLocation = &locationDocument{
			Point:   pointDocument{Type: geoJSONPoint, Coordinates: loc.Point()},
			Address: loc.Address,
		}
	}

	return doc
}

func toUserDomain(doc *userDocument) (*entity.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           id,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Name:         doc.Name,
		Role:         entity.Role(doc.Role),
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}
	if loc := doc.HomeLocation; loc != nil {
		home := entity.LocationFromPoint(loc.Point.Coordinates, loc.Address)
		user.HomeLocation = &home
	}

	return user, nil
}
