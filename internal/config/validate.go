package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Storage.RootDir == "" {
		return fmt.Errorf("storage.root_dir must not be empty")
	}
	if c.Storage.PublicBaseURL == "" {
		return fmt.Errorf("storage.public_base_url must not be empty")
	}

	if c.Household.InviteTTL <= 0 {
		return fmt.Errorf("household.invite_ttl must be > 0 (got %v)", c.Household.InviteTTL)
	}
	if c.Household.CodeMaxAttempts <= 0 {
		return fmt.Errorf("household.code_max_attempts must be > 0 (got %d)", c.Household.CodeMaxAttempts)
	}

	return nil
}
