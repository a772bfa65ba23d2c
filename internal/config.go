package internal

import "time"

// Config is populated from the environment at startup. Required values
// abort the boot with a config error rather than failing later mid-request.
type Config struct {
	Port      int    `env:"PORT,required=true"`
	SecretKey string `env:"SECRET_KEY,required=true"`
	LogLevel  string `env:"LOG_LEVEL,default=INFO"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	CacheFilepath  string `env:"CACHE_FILEPATH,required=true"`

	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=2h"`

	// Sliding-window cap for outbound messages per sender.
	MessageRateLimit  int           `env:"MESSAGE_RATE_LIMIT,default=10"`
	MessageRateWindow time.Duration `env:"MESSAGE_RATE_WINDOW,default=60s"`

	// Cache TTLs for the read-through endpoints.
	RequestListTTL time.Duration `env:"REQUEST_LIST_TTL,default=10m"`
	ProfileTTL     time.Duration `env:"PROFILE_TTL,default=1h"`

	BucketName   string `env:"BUCKET_NAME"`
	BucketRegion string `env:"BUCKET_REGION"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	FrontendURL  string `env:"FRONTEND_URL"`
}
