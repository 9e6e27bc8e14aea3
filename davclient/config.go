package davclient

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AuthType selects how requests are authenticated.
type AuthType string

const (
	AuthBasic  AuthType = "basic"
	AuthBearer AuthType = "bearer"
	AuthDigest AuthType = "digest"
)

// ServerConfig describes one DAV server connection.
type ServerConfig struct {
	Name     string   `json:"name" validate:"required"`
	BaseURL  string   `json:"baseUrl" validate:"required,url"`
	Username string   `json:"username,omitempty" validate:"required_if=AuthType basic"`
	Password string   `json:"password,omitempty" validate:"required_if=AuthType basic"`
	AuthType AuthType `json:"authType" validate:"required,oneof=basic bearer digest"`
	Token    string   `json:"token,omitempty" validate:"required_if=AuthType bearer"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config without any I/O. Digest authentication yields
// ErrUnsupportedAuthentication regardless of the other fields; every other
// problem is a *ConfigurationError naming the first offending field.
func (c ServerConfig) Validate() error {
	if c.AuthType == AuthDigest {
		return ErrUnsupportedAuthentication
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigurationError{Server: c.Name, Reason: err.Error()}
	}
	fe := verrs[0]
	return &ConfigurationError{
		Server: c.Name,
		Field:  fe.Field(),
		Reason: describeTag(fe),
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required for " + strings.TrimPrefix(fe.Param(), "AuthType ") + " authentication"
	case "url":
		return "must be an absolute URL"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
