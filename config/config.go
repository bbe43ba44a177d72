package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config cấu hình ứng dụng, đọc từ biến môi trường và file .env
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`
	DBTimezone  string `mapstructure:"DB_TIMEZONE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisUser     string `mapstructure:"REDIS_USER"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTSecret        string `mapstructure:"JWT_SECRET"`
	JWTExpiryMinutes int    `mapstructure:"JWT_EXPIRY_MINUTES"`

	DepositCheckInOverride bool `mapstructure:"DEPOSIT_CHECKIN_OVERRIDE"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	UploadDir     string `mapstructure:"UPLOAD_DIR"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`
	MaxUploadMB   int64  `mapstructure:"MAX_UPLOAD_MB"`

	AMQPURL string `mapstructure:"AMQP_URL"`

	DashboardCacheTTL  time.Duration `mapstructure:"DASHBOARD_CACHE_TTL"`
	LoginRatePerMinute int           `mapstructure:"LOGIN_RATE_PER_MINUTE"`
	CORSOrigins        string        `mapstructure:"CORS_ORIGINS"`

	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]interface{}{
	"PORT":                     "8083",
	"ENV":                      "dev",
	"STORE_DRIVER":             "postgres",
	"DATABASE_URL":             "",
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "5432",
	"DB_USER":                  "postgres",
	"DB_PASSWORD":              "",
	"DB_NAME":                  "homestay",
	"DB_SSLMODE":               "disable",
	"DB_TIMEZONE":              "Asia/Ho_Chi_Minh",
	"REDIS_ADDR":               "",
	"REDIS_USER":               "",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"JWT_SECRET":               "",
	"JWT_EXPIRY_MINUTES":       60 * 24,
	"DEPOSIT_CHECKIN_OVERRIDE": false,
	"STORAGE_DRIVER":           "local",
	"UPLOAD_DIR":               "./uploads",
	"PUBLIC_BASE_URL":          "",
	"CLOUDINARY_URL":           "",
	"MAX_UPLOAD_MB":            10,
	"AMQP_URL":                 "",
	"DASHBOARD_CACHE_TTL":      "5m",
	"LOGIN_RATE_PER_MINUTE":    10,
	"CORS_ORIGINS":             "*",
	"ADMIN_EMAIL":              "",
	"ADMIN_PASSWORD":           "",
	"LOG_LEVEL":                "info",
}

// Load nạp .env (nếu có) rồi đọc cấu hình qua viper
func Load() (*Config, error) {
	// .env không bắt buộc
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("đọc cấu hình thất bại: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET không được để trống")
	}
	switch c.StoreDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORE_DRIVER không hợp lệ: %s", c.StoreDriver)
	}
	switch c.StorageDriver {
	case "local", "cloudinary":
	default:
		return fmt.Errorf("STORAGE_DRIVER không hợp lệ: %s", c.StorageDriver)
	}
	if c.StorageDriver == "cloudinary" && c.CloudinaryURL == "" {
		return fmt.Errorf("CLOUDINARY_URL là bắt buộc khi STORAGE_DRIVER=cloudinary")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.JWTExpiryMinutes) * time.Minute
}

func (c *Config) MaxUploadSize() int64 {
	return c.MaxUploadMB << 20
}

// Location múi giờ nghiệp vụ, dùng cho dashboard và parse ngày
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.DBTimezone)
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
