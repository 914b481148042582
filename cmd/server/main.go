package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/db"
	"github.com/w4tchme/w4tchme/internal/redis"
	"github.com/w4tchme/w4tchme/internal/wizard"
)

// wizard sessions outlive any reasonable creation flow but not a day
const wizardSessionTTL = 24 * time.Hour

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	env := LoadEnvironment()

	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore()
	gateway := InitStorage(env)
	sessions := initSessions(env)

	r := gin.Default()
	tmpl := LoadTemplates()
	RegisterRoutes(r, env, store, gateway, sessions, tmpl)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// initSessions prefers Redis so in-flight wizard sessions survive a
// restart; without Redis configured the in-memory store serves one node.
func initSessions(env Environment) wizard.SessionStore {
	if env.RedisAddress == "" {
		log.Info().Msg("REDIS_ADDRESS not set, using in-memory wizard sessions")
		return wizard.NewMemorySessions()
	}
	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	log.Info().Str("address", env.RedisAddress).Msg("using Redis wizard sessions")
	return redis.NewSessionStore(wizardSessionTTL)
}
