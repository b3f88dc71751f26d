package entity

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com \t"))
	assert.Equal(t, NormalizeEmail("A@x.com"), NormalizeEmail("a@x.com"))
}

func TestRegistration_Normalize(t *testing.T) {
	reg := Registration{
		Email:    " Location@Example.COM ",
		Password: "  spaced password  ",
		Name:     "  Location User ",
		HomeLocation: NewLocationInput(40.7128, -74.0060, "  New York, NY, USA "),
	}

	normalized := reg.Normalize()

	assert.Equal(t, "location@example.com", normalized.Email)
	assert.Equal(t, "  spaced password  ", normalized.Password)
	assert.Equal(t, "Location User", normalized.Name)
	assert.Equal(t, RoleUser, normalized.Role)
	require.NotNil(t, normalized.HomeLocation)
	assert.Equal(t, "New York, NY, USA", normalized.HomeLocation.Address)

	// The original submission is not modified.
	assert.Equal(t, "  New York, NY, USA ", reg.HomeLocation.Address)
	assert.NotSame(t, reg.HomeLocation.Lat, normalized.HomeLocation.Lat)
}

func TestLocationInput_Location(t *testing.T) {
	loc := NewLocationInput(0, 0, "Null Island").Location()
	assert.Equal(t, &Location{Lat: 0, Lng: 0, Address: "Null Island"}, loc)

	lat := 12.5
	partial := (&LocationInput{Lat: &lat, Address: "Half"}).Location()
	assert.Equal(t, 12.5, partial.Lat)
	assert.Zero(t, partial.Lng)

	var missing *LocationInput
	assert.Nil(t, missing.Location())
	assert.Nil(t, missing.Clone())
}

func TestRegistration_NormalizeKeepsExplicitRole(t *testing.T) {
	normalized := Registration{Role: RoleAdmin}.Normalize()
	assert.Equal(t, RoleAdmin, normalized.Role)
}

func TestUser_SanitizeDropsHash(t *testing.T) {
	now := time.Now()
	user := &User{
		ID:           uuid.New(),
		Email:        "auth@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Name:         "Auth Test User",
		Role:         RoleUser,
		HomeLocation: &Location{Lat: 1, Lng: 2, Address: "somewhere"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	public := user.Sanitize()

	assert.Equal(t, user.ID, public.ID)
	assert.Equal(t, user.Email, public.Email)
	assert.Equal(t, user.Name, public.Name)
	assert.Equal(t, user.HomeLocation, public.HomeLocation)
	assert.NotSame(t, user.HomeLocation, public.HomeLocation)

	var nilUser *User
	assert.Nil(t, nilUser.Sanitize())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("merchant").IsValid())
	assert.False(t, Role("").IsValid())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
}

func TestLocation_InBounds(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want bool
	}{
		{name: "new york", loc: Location{Lat: 40.7128, Lng: -74.0060}, want: true},
		{name: "corners", loc: Location{Lat: -90, Lng: 180}, want: true},
		{name: "latitude too large", loc: Location{Lat: 200, Lng: -74}, want: false},
		{name: "longitude too large", loc: Location{Lat: 45, Lng: 200}, want: false},
		{name: "nan latitude", loc: Location{Lat: math.NaN(), Lng: 0}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.InBounds())
		})
	}
}

func TestLocation_PointRoundTrip(t *testing.T) {
	loc := Location{Lat: 40.7128, Lng: -74.0060, Address: "New York, NY, USA"}

	point := loc.Point()
	assert.Equal(t, orb.Point{-74.0060, 40.7128}, point)
	assert.Equal(t, loc, LocationFromPoint(point, loc.Address))
}
