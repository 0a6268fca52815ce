package config

import (
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  log.Level

	PressureInterval   time.Duration
	PredictionInterval time.Duration

	RateLimit  int
	RateWindow time.Duration

	// default surface for rendered heatmaps
	SurfaceWidth  float64
	SurfaceHeight float64
}

// Load 加载配置
func Load() *Config {
	return &Config{
		Port:               getString("PORT", ":8080"),
		DBPath:             getString("DB_PATH", "./data/pressure/pressure.db"),
		JWTSecret:          getString("JWT_SECRET", "your-secret-key-change-in-production"),
		TokenTTL:           getDuration("TOKEN_TTL", 24*time.Hour),
		LogLevel:           getLevel("LOG_LEVEL", log.InfoLevel),
		PressureInterval:   getDuration("PRESSURE_INTERVAL", 2*time.Second),
		PredictionInterval: getDuration("PREDICTION_INTERVAL", 5*time.Second),
		RateLimit:          getInt("RATE_LIMIT", 120),
		RateWindow:         getDuration("RATE_WINDOW", time.Minute),
		SurfaceWidth:       getFloat("SURFACE_WIDTH", 400),
		SurfaceHeight:      getFloat("SURFACE_HEIGHT", 800),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.WithField(key, v).Warn("Invalid duration, using default")
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.WithField(key, v).Warn("Invalid integer, using default")
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !(f > 0) {
		log.WithField(key, v).Warn("Invalid number, using default")
		return def
	}
	return f
}

func getLevel(key string, def log.Level) log.Level {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	lvl, err := log.ParseLevel(v)
	if err != nil {
		log.WithField(key, v).Warn("Invalid log level, using default")
		return def
	}
	return lvl
}
