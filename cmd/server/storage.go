package main

import (
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/storage"
)

// InitStorage selects and returns the configured storage backend
func InitStorage(env Environment) storage.Gateway {
	switch env.StorageBackend {
	case "spaces":
		spacesStorage, err := storage.NewSpacesStorage(
			env.SpacesEndpoint,
			env.SpacesRegion,
			env.SpacesBucket,
			env.SpacesCDNURL,
			env.SpacesAccessKey,
			env.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", env.SpacesCDNURL).Msg("using DigitalOcean Spaces storage")
		return spacesStorage

	case "supabase":
		if env.SupabaseURL == "" || env.SupabaseServiceKey == "" {
			log.Fatal().Msg("SUPABASE_URL and SUPABASE_SERVICE_KEY are required for supabase storage")
		}
		log.Info().Str("bucket", env.SupabaseBucket).Msg("using Supabase storage")
		return storage.NewSupabaseStorage(env.SupabaseURL, env.SupabaseServiceKey, env.SupabaseBucket)

	case "local":
		log.Info().Str("dir", env.UploadDir).Msg("using local file storage")
		return storage.NewLocalStorage(env.UploadDir)

	default:
		log.Fatal().Str("backend", env.StorageBackend).Msg("unknown storage backend")
		return nil
	}
}
