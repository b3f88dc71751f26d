package validation

import (
	"math"
	"strings"
	"testing"

	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() entity.Registration {
	return entity.Registration{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
		HomeLocation: entity.NewLocationInput(40.7128, -74.0060, "New York, NY, USA"),
	}
}

func coordinate(v float64) *float64 {
	return &v
}

func requireViolations(t *testing.T, err error) map[string]string {
	t.Helper()

	require.Error(t, err)
	require.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))

	return validationErr.Fields()
}

func TestValidateRegistration_Valid(t *testing.T) {
	v := NewUserValidator()

	assert.NoError(t, v.ValidateRegistration(validRegistration()))

	withoutLocation := validRegistration()
	withoutLocation.HomeLocation = nil
	assert.NoError(t, v.ValidateRegistration(withoutLocation))

	admin := validRegistration()
	admin.Role = entity.RoleAdmin
	assert.NoError(t, v.ValidateRegistration(admin))

	origin := validRegistration()
	origin.HomeLocation = entity.NewLocationInput(0, 0, "Null Island")
	assert.NoError(t, v.ValidateRegistration(origin))
}

func TestValidateRegistration_Location(t *testing.T) {
	v := NewUserValidator()

	tests := []struct {
		name     string
		location *entity.LocationInput
		field    string
		message  string
	}{
		{
			name:     "latitude out of range",
			location: entity.NewLocationInput(200, 0, "Nowhere"),
			field:    "homeLocation.lat",
			message:  "Latitude must be between -90 and 90",
		},
		{
			name:     "longitude out of range",
			location: entity.NewLocationInput(45, 200, "Nowhere"),
			field:    "homeLocation.lng",
			message:  "Longitude must be between -180 and 180",
		},
		{
			name:     "latitude is NaN",
			location: entity.NewLocationInput(math.NaN(), 0, "Nowhere"),
			field:    "homeLocation.lat",
			message:  "Latitude must be between -90 and 90",
		},
		{
			name:     "blank address",
			location: entity.NewLocationInput(45, 45, "   "),
			field:    "homeLocation.address",
			message:  "Address is required",
		},
		{
			name:     "latitude missing",
			location: &entity.LocationInput{Lng: coordinate(0), Address: "Somewhere"},
			field:    "homeLocation.lat",
			message:  "Latitude is required",
		},
		{
			name:     "longitude missing",
			location: &entity.LocationInput{Lat: coordinate(0), Address: "Somewhere"},
			field:    "homeLocation.lng",
			message:  "Longitude is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validRegistration()
			candidate.HomeLocation = tt.location

			fields := requireViolations(t, v.ValidateRegistration(candidate))
			assert.Equal(t, map[string]string{tt.field: tt.message}, fields)
		})
	}
}

func TestValidateRegistration_Password(t *testing.T) {
	v := NewUserValidator()

	short := validRegistration()
	short.Password = "short12"
	fields := requireViolations(t, v.ValidateRegistration(short))
	assert.Equal(t, "Password must be at least 8 characters long", fields["password"])

	empty := validRegistration()
	empty.Password = ""
	fields = requireViolations(t, v.ValidateRegistration(empty))
	assert.Equal(t, "Password is required", fields["password"])

	long := validRegistration()
	long.Password = strings.Repeat("a", maxPasswordBytes+1)
	fields = requireViolations(t, v.ValidateRegistration(long))
	assert.Equal(t, "Password must be at most 72 bytes long", fields["password"])

	exact := validRegistration()
	exact.Password = strings.Repeat("a", maxPasswordBytes)
	assert.NoError(t, v.ValidateRegistration(exact))
}

func TestValidateRegistration_EmailAndName(t *testing.T) {
	v := NewUserValidator()

	tests := []struct {
		name      string
		email     string
		fullName  string
		violation map[string]string
	}{
		{"missing email", "", "Test User", map[string]string{"email": "Email is required"}},
		{"email without domain dot", "test@example", "Test User", map[string]string{"email": "Please enter a valid email address"}},
		{"email with inner space", "te st@example.com", "Test User", map[string]string{"email": "Please enter a valid email address"}},
		{"blank name", "test@example.com", "  ", map[string]string{"name": "Name is required"}},
		{"one letter name", "test@example.com", "A", map[string]string{"name": "Name must be at least 2 characters long"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validRegistration()
			candidate.Email = tt.email
			candidate.Name = tt.fullName

			assert.Equal(t, tt.violation, requireViolations(t, v.ValidateRegistration(candidate)))
		})
	}
}

func TestValidateRegistration_NormalizesBeforeChecking(t *testing.T) {
	v := NewUserValidator()

	candidate := validRegistration()
	candidate.Email = "  Test@Example.COM "
	candidate.Name = "  Jo  "

	assert.NoError(t, v.ValidateRegistration(candidate))
}

func TestValidateRegistration_CollectsAllViolations(t *testing.T) {
	v := NewUserValidator()

	fields := requireViolations(t, v.ValidateRegistration(entity.Registration{
		Email:        "not-an-email",
		Password:     "short",
		Name:         "A",
		Role:         entity.Role("merchant"),
		HomeLocation: entity.NewLocationInput(-91, 181, ""),
	}))

	assert.Equal(t, map[string]string{
		"email":                "Please enter a valid email address",
		"password":             "Password must be at least 8 characters long",
		"name":                 "Name must be at least 2 characters long",
		"role":                 "Role must be one of: user, admin",
		"homeLocation.lat":     "Latitude must be between -90 and 90",
		"homeLocation.lng":     "Longitude must be between -180 and 180",
		"homeLocation.address": "Address is required",
	}, fields)
}

func TestValidateRegistration_AddressOnlyLocation(t *testing.T) {
	v := NewUserValidator()

	candidate := validRegistration()
	candidate.HomeLocation = &entity.LocationInput{Address: "Somewhere"}

	fields := requireViolations(t, v.ValidateRegistration(candidate))
	assert.Equal(t, map[string]string{
		"homeLocation.lat": "Latitude is required",
		"homeLocation.lng": "Longitude is required",
	}, fields)
}
