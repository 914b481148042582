package storage

import (
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog/log"
	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage stores uploads in a Supabase Storage bucket through the
// service-role key; public URLs are derived from bucket + object path.
type SupabaseStorage struct {
	client *storage_go.Client
	bucket string
}

func NewSupabaseStorage(projectURL, serviceKey, bucket string) *SupabaseStorage {
	client := storage_go.NewClient(projectURL+"/storage/v1", serviceKey, nil)
	return &SupabaseStorage{client: client, bucket: bucket}
}

func (sb *SupabaseStorage) SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	normalizedFilename := normalizeFilename(fileHeader.Filename)
	log.Debug().Str("original", fileHeader.Filename).Str("normalized", normalizedFilename).Msg("file upload normalized")

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func(src multipart.File) {
		_ = src.Close()
	}(src)

	objectPath := fmt.Sprintf("%s/%s", folder, normalizedFilename)
	contentType := getContentType(normalizedFilename)

	_, err = sb.client.UploadFile(sb.bucket, objectPath, src, storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		log.Error().Err(err).Str("path", objectPath).Msg("failed to upload file to Supabase storage")
		return "", fmt.Errorf("failed to upload to Supabase storage: %w", err)
	}

	return sb.client.GetPublicUrl(sb.bucket, objectPath).SignedURL, nil
}

// EmptyFolder walks the folder recursively: Supabase lists nested prefixes
// as folder entries (no object id), which are descended into rather than
// removed directly.
func (sb *SupabaseStorage) EmptyFolder(folder string) error {
	items, err := sb.client.ListFiles(sb.bucket, folder, storage_go.FileSearchOptions{Limit: 1000})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", folder, err)
	}

	for _, item := range items {
		fullPath := fmt.Sprintf("%s/%s", folder, item.Name)
		if item.Id == "" {
			if err := sb.EmptyFolder(fullPath); err != nil {
				return err
			}
			continue
		}
		if _, err := sb.client.RemoveFile(sb.bucket, []string{fullPath}); err != nil {
			log.Error().Err(err).Str("path", fullPath).Msg("failed to remove object from Supabase storage")
			return fmt.Errorf("failed to remove %s: %w", fullPath, err)
		}
	}
	return nil
}
