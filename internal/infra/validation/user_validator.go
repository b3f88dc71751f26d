// Package validation implements the registration rules with go-playground/validator.
package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"
	"bathroom/internal/domain/service"
	"bathroom/internal/errors"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
	maxPasswordBytes = 72
	minNameLength    = 2
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type registrationRules struct {
	Email        string         `json:"email" validate:"required,emailshape"`
	Password     string         `json:"password" validate:"required,min=8,maxbytes=72"`
	Name         string         `json:"name" validate:"required,min=2"`
	Role         string         `json:"role" validate:"oneof=user admin"`
	HomeLocation *locationRules `json:"homeLocation"`
}

type locationRules struct {
	Lat     *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng     *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	Address string  `json:"address" validate:"required"`
}

type userValidator struct {
	validate *validator.Validate
}

// NewUserValidator builds the registration validator.
func NewUserValidator() service.UserValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	// Both registrations only fail on a malformed tag name.
	_ = validate.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}

		return len(fl.Field().String()) <= limit
	})

	return &userValidator{validate: validate}
}

func (v *userValidator) ValidateRegistration(candidate entity.Registration) error {
	normalized := candidate.Normalize()

	rules := registrationRules{
		Email:    normalized.Email,
		Password: normalized.Password,
		Name:     normalized.Name,
		Role:     normalized.Role.String(),
	}
	if loc := normalized.HomeLocation; loc != nil {
		rules.HomeLocation = &locationRules{
			Lat:     loc.Lat,
			Lng:     loc.Lng,
			Address: loc.Address,
		}
	}

	err := v.validate.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate registration")
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		field := fieldPath(fieldErr.Namespace())
		if _, seen := fields[field]; !seen {
			fields[field] = message(field, fieldErr.Tag())
		}
	}

	return domainerrors.NewValidationError(fields)
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return path
}

func message(field, tag string) string {
	switch field {
	case "email":
		if tag == "required" {
			return "Email is required"
		}

		return "Please enter a valid email address"
	case "password":
		switch tag {
		case "required":
			return "Password is required"
		case "maxbytes":
			return "Password must be at most " + strconv.Itoa(maxPasswordBytes) + " bytes long"
		}

		return "Password must be at least " + strconv.Itoa(minPasswordLength) + " characters long"
	case "name":
		if tag == "required" {
			return "Name is required"
		}

		return "Name must be at least " + strconv.Itoa(minNameLength) + " characters long"
	case "role":
		return "Role must be one of: " + entity.RoleUser.String() + ", " + entity.RoleAdmin.String()
	case "homeLocation.lat":
		if tag == "required" {
			return "Latitude is required"
		}

		return "Latitude must be between -90 and 90"
	case "homeLocation.lng":
		if tag == "required" {
			return "Longitude is required"
		}

		return "Longitude must be between -180 and 180"
	case "homeLocation.address":
		return "Address is required"
	}

	return "Invalid value"
}
