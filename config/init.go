package config

import (
	"fmt"

	middlewares "homestay/middleware"
	"homestay/services/events"
	"homestay/services/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InitApp tạo gin engine với CORS và các middleware chung
func InitApp(cfg *Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middlewares.HeaderRequestID)
	configCors.AddExposeHeaders(middlewares.HeaderRequestID)
	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		configCors.AllowAllOrigins = true
	} else {
		configCors.AllowOrigins = origins
		configCors.AllowCredentials = true
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)

	router.Use(
		middlewares.RequestID(),
		middlewares.RequestLogger(log),
		middlewares.Recovery(log),
	)
	return router
}

// NewStorage chọn nơi lưu file theo STORAGE_DRIVER
func NewStorage(cfg *Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "cloudinary":
		return storage.NewCloudinaryStorage(cfg.CloudinaryURL, "homestay")
	case "local":
		return storage.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER không hợp lệ: %s", cfg.StorageDriver)
	}
}

// NewPublisher dùng RabbitMQ khi có AMQP_URL, ngược lại bỏ qua sự kiện
func NewPublisher(cfg *Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}, nil
	}
	return events.NewAMQPPublisher(cfg.AMQPURL)
}
