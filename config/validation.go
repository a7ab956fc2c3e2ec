package config

import (
	"fmt"
	"strings"
)

// ConfigRequirements lists the settings that must be non-empty in an environment
type ConfigRequirements struct {
	RequiredSettings []string
	RequiredSecrets  []string
}

var requirements = map[Environment]ConfigRequirements{
	Development: {
		RequiredSecrets: []string{"api_password", "jwt_secret"},
	},
	Test: {
		RequiredSecrets: []string{"api_password", "jwt_secret"},
	},
	CI: {
		RequiredSettings: []string{"DB_DRIVER"},
		RequiredSecrets:  []string{"api_password", "jwt_secret"},
	},
	Production: {
		RequiredSettings: []string{"DB_DRIVER", "BASE_URL"},
		RequiredSecrets:  []string{"db_password", "api_password", "jwt_secret"},
	},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errs []string

	settings := map[string]string{
		"DB_DRIVER": cfg.DBDriver,
		"BASE_URL":  cfg.BaseURL,
	}
	for _, name := range reqs.RequiredSettings {
		if settings[name] == "" {
			errs = append(errs, fmt.Sprintf("required setting %s is not set", name))
		}
	}

	secrets := map[string]string{
		"db_password":  cfg.DBPassword,
		"api_password": cfg.APIPassword,
		"jwt_secret":   cfg.JWTSecret,
	}
	for _, name := range reqs.RequiredSecrets {
		if secrets[name] != "" {
			continue
		}
		if env == CI {
			errs = append(errs, fmt.Sprintf("%s environment variable is required in CI environment", strings.ToUpper(name)))
		} else {
			errs = append(errs, fmt.Sprintf("%s secret is required", name))
		}
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}

	if cfg.ServerPort == "" {
		errs = append(errs, "SERVER_PORT must not be empty")
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, "TOKEN_TTL must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
