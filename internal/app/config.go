package app

import (
	"strings"
	"time"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/utils"
)

type Config struct {
	JWTSecretKey string

	// EngineTimeout bounds each engine call.
	EngineTimeout time.Duration
	EngineModel   string

	// RewriteOptionCount is how many alternative versions one rewrite
	// request produces.
	RewriteOptionCount int

	RedisAddr     string
	RedisPassword string

	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	engineTimeoutSeconds := utils.GetEnvAsInt("ENGINE_TIMEOUT_SECONDS", 45, log)
	engineModel := utils.GetEnv("OPENAI_MODEL", "", log)
	rewriteOptionCount := utils.GetEnvAsInt("REWRITE_OPTION_COUNT", 3, log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)

	var origins []string
	if raw := utils.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		JWTSecretKey:       jwtSecretKey,
		EngineTimeout:      time.Duration(engineTimeoutSeconds) * time.Second,
		EngineModel:        engineModel,
		RewriteOptionCount: rewriteOptionCount,
		RedisAddr:          redisAddr,
		RedisPassword:      redisPassword,
		CORSOrigins:        origins,
	}
}
