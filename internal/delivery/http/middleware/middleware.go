package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type MiddlewareConfig struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

type Middleware struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

func NewMiddleware(c *MiddlewareConfig) *Middleware {
	if c == nil {
		return &Middleware{}
	}

	return &Middleware{
		Log:    c.Log,
		Config: c.Config,
	}
}

// AccessLogMiddleware writes one line per request to the application log output.
func (m *Middleware) AccessLogMiddleware() fiber.Handler {
	cfg := logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} (${latency}) request_id=${locals:" + requestIDKey + "}\n",
		Output: os.Stdout,
	}
	if m != nil && m.Log != nil && m.Log.Out != nil {
		cfg.Output = m.Log.Out
	}
	return logger.New(cfg)
}
