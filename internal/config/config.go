package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Media    MediaConfig    `mapstructure:"media" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Timeouts are expressed in seconds.
	ReadTimeoutSeconds     int `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// TokenLifetimeMinutes defaults to 14 days.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost           int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// MediaConfig contains the settings for the media CDN.
type MediaConfig struct {
	// CloudinaryURL has the form cloudinary://<api_key>:<api_secret>@<cloud_name>.
	CloudinaryURL  string `mapstructure:"cloudinary_url" validate:"required,startswith=cloudinary://"`
	Folder         string `mapstructure:"folder" validate:"required"`
	MaxUploadFiles int    `mapstructure:"max_upload_files" validate:"gt=0,lte=50"`
	// MaxUploadBytes bounds the size of a multipart upload request body.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"gt=0"`
}
