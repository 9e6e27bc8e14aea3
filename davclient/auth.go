package davclient

import (
	"encoding/base64"
)

// AuthHeaders derives the authentication headers for cfg.
//
// Basic and bearer configs missing their credentials produce no header
// rather than an error; Validate is where incompleteness is rejected.
func AuthHeaders(cfg ServerConfig) (map[string]string, error) {
	headers := make(map[string]string)

	switch cfg.AuthType {
	case AuthBasic:
		if cfg.Username != "" && cfg.Password != "" {
			creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
			headers["Authorization"] = "Basic " + creds
		}
	case AuthBearer:
		if cfg.Token != "" {
			headers["Authorization"] = "Bearer " + cfg.Token
		}
	case AuthDigest:
		return nil, ErrUnsupportedAuthentication
	default:
		return nil, &ConfigurationError{
			Server: cfg.Name,
			Field:  "AuthType",
			Reason: "must be one of basic, bearer, digest",
		}
	}

	return headers, nil
}
