package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: values that differ between environments (port, DB connection,
//   secrets)
// - default: venue policy that is stable across environments (operating
//   hours, hold TTL, rates) but still tunable without a rebuild
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Venue  VenueConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Panama"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-18000"` // -5*60*60
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// VenueConfig is the booking policy of the single venue this service runs
// for. All persisted timestamps are UTC; these settings describe the venue's
// local wall clock and hold rules.
type VenueConfig struct {
	// Fixed UTC offset in hours; the venue does not observe DST.
	UTCOffsetHours int `envconfig:"VENUE_UTC_OFFSET_HOURS" default:"-5"`
	// Operating window in venue-local hours: slots start at [OpenHour, CloseHour).
	OpenHour  int `envconfig:"VENUE_OPEN_HOUR" default:"8"`
	CloseHour int `envconfig:"VENUE_CLOSE_HOUR" default:"23"`
	// How long a HOLD blocks capacity before the sweeper reclaims it.
	HoldTTL time.Duration `envconfig:"VENUE_HOLD_TTL" default:"10m"`
	// A single reservation spans whole hours, at most this many.
	MaxDurationHours int `envconfig:"VENUE_MAX_DURATION_HOURS" default:"4"`
	// At most this many resource lines per reservation.
	MaxResources int `envconfig:"VENUE_MAX_RESOURCES" default:"10"`
	// Per-kind hourly rates in cents. A zero rate makes the kind free and
	// free reservations confirm without a hold phase.
	FieldHourlyRateCents    int64 `envconfig:"VENUE_FIELD_HOURLY_RATE_CENTS" default:"3500"`
	TableRowHourlyRateCents int64 `envconfig:"VENUE_TABLE_ROW_HOURLY_RATE_CENTS" default:"0"`
	// Deposit charged up front, as a percentage of the total.
	DepositPercent int `envconfig:"VENUE_DEPOSIT_PERCENT" default:"50"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:          "error",
			TimeZone:       "America/Panama",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -18000,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Venue: VenueConfig{
			UTCOffsetHours:          -5,
			OpenHour:                8,
			CloseHour:               23,
			HoldTTL:                 10 * time.Minute,
			MaxDurationHours:        4,
			MaxResources:            10,
			FieldHourlyRateCents:    3500,
			TableRowHourlyRateCents: 0,
			DepositPercent:          50,
		},
	}
}
