package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	AdminSecret    string
	DatabaseURL    string
	MigrationsPath string
	PublicBaseURL  string
	MaxUploadMB    int64

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	StorageBackend string // local | spaces | supabase
	UploadDir      string

	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:    os.Getenv("APP_ENV"),
		ServerAddress:  getenvDefault("SERVER_ADDRESS", ":8080"),
		AdminSecret:    os.Getenv("ADMIN_SECRET"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getenvDefault("MIGRATIONS_PATH", "./migrations"),
		PublicBaseURL:  getenvDefault("PUBLIC_BASE_URL", "http://localhost:8080"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		StorageBackend: getenvDefault("STORAGE_BACKEND", "local"),
		UploadDir:      getenvDefault("UPLOAD_DIR", "./uploads"),

		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseBucket:     getenvDefault("SUPABASE_BUCKET", "w4tchme"),
	}

	env.MaxUploadMB = 50
	if raw := os.Getenv("MAX_UPLOAD_MB"); raw != "" {
		mb, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || mb <= 0 {
			log.Fatal().Str("MAX_UPLOAD_MB", raw).Msg("invalid MAX_UPLOAD_MB")
		}
		env.MaxUploadMB = mb
	}

	if env.DatabaseURL == "" || env.AdminSecret == "" {
		log.Fatal().Msg("missing required environment variables")
	}

	return env
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
