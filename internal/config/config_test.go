package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                     "5000",
		Env:                      "development",
		DBDriver:                 DriverPostgres,
		DBHost:                   "localhost",
		DBName:                   "blogly",
		DBPassword:               "secure-password",
		DBSSLMode:                "require",
		UserDeletePolicy:         UserDeleteCascade,
		HomeRecentPosts:          5,
		DBConnMaxLifetimeMinutes: 5,
		TracingSampleRatio:       1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBSQLitePath = "" }, true},
		{"sqlite with path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBSQLitePath = "dev.db" }, false},
		{"restrict policy", func(c *Config) { c.UserDeletePolicy = UserDeleteRestrict }, false},
		{"unknown delete policy", func(c *Config) { c.UserDeletePolicy = "orphan" }, true},
		{"zero home posts", func(c *Config) { c.HomeRecentPosts = 0 }, true},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }, true},
		{"production with default password", func(c *Config) { c.Env = "production"; c.DBPassword = "postgres" }, true},
		{"production with sqlite", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverSQLite
			c.DBSQLitePath = "prod.db"
		}, true},
		{"production with strong password", func(c *Config) { c.Env = "prod" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLite ")
	t.Setenv("DB_SQLITE_PATH", "override.db")
	t.Setenv("USER_DELETE_POLICY", "Restrict")
	t.Setenv("HOME_RECENT_POSTS", "7")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", c.Env)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, "override.db", c.DBSQLitePath)
	assert.Equal(t, UserDeleteRestrict, c.UserDeletePolicy)
	assert.Equal(t, 7, c.HomeRecentPosts)
	assert.Equal(t, "5000", c.Port)
}

func TestLoadConfig_InvalidPolicyRejected(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("USER_DELETE_POLICY", "orphan")

	_, err := LoadConfig()
	assert.Error(t, err)
}
