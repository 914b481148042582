package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Upload folders. Every asset lands in exactly one of these.
const (
	FolderBackgrounds = "backgrounds"
	FolderMedia       = "media"
	FolderAudio       = "audio"
)

// Folders lists every upload folder the purge tool empties.
func Folders() []string {
	return []string{FolderBackgrounds, FolderMedia, FolderAudio}
}

// IsFolder reports whether name is a known upload folder. Upload endpoints
// refuse anything else so clients cannot write arbitrary prefixes.
func IsFolder(name string) bool {
	switch name {
	case FolderBackgrounds, FolderMedia, FolderAudio:
		return true
	}
	return false
}

// Gateway is the object storage abstraction shared by the wizard upload
// path and the admin purge tool.
type Gateway interface {
	// SaveFile uploads one file into folder and returns its public URL.
	SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error)

	// EmptyFolder removes every object under folder, recursing into
	// sub-folders where the backend nests them.
	EmptyFolder(folder string) error
}

type LocalStorage struct {
	uploadDir string
}

func NewLocalStorage(uploadDir string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir}
}

// normalizeFilename creates a unique, normalized filename without spaces
func normalizeFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	baseName := strings.TrimSuffix(originalFilename, ext)

	baseName = strings.ReplaceAll(baseName, " ", "_")

	// keep only alphanumeric, dash, underscore
	reg := regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	baseName = reg.ReplaceAllString(baseName, "")

	if baseName == "" {
		baseName = "file"
	}

	// timestamp for traceability, uuid fragment against same-second uploads
	timestamp := time.Now().Format("20060102_150405")
	suffix := uuid.NewString()[:8]

	return fmt.Sprintf("%s_%s_%s%s", baseName, timestamp, suffix, ext)
}

func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	normalizedFilename := normalizeFilename(fileHeader.Filename)
	log.Debug().Str("original", fileHeader.Filename).Str("normalized", normalizedFilename).Msg("file upload normalized")

	dir := filepath.Join(ls.uploadDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func(src multipart.File) {
		_ = src.Close()
	}(src)

	uploadPath := filepath.Join(dir, normalizedFilename)
	dst, err := os.Create(uploadPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func(dst *os.File) {
		_ = dst.Close()
	}(dst)

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	// served via the /uploads static route
	return "/" + filepath.ToSlash(uploadPath), nil
}

func (ls *LocalStorage) EmptyFolder(folder string) error {
	dir := filepath.Join(ls.uploadDir, folder)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg":
		return "audio/ogg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
