package storage

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// SpacesStorage stores uploads in a DigitalOcean Spaces (S3-compatible)
// bucket and serves them through its CDN.
type SpacesStorage struct {
	client   *s3.S3
	bucket   string
	cdnURL   string
	endpoint string
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client:   s3.New(sess),
		bucket:   bucket,
		cdnURL:   cdnURL,
		endpoint: endpoint,
	}, nil
}

func (ss *SpacesStorage) SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	normalizedFilename := normalizeFilename(fileHeader.Filename)
	log.Debug().Str("original", fileHeader.Filename).Str("normalized", normalizedFilename).Msg("file upload normalized")

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func(src multipart.File) {
		_ = src.Close()
	}(src)

	key := fmt.Sprintf("%s/%s", folder, normalizedFilename)
	contentType := getContentType(normalizedFilename)

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	cdnURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key)
	return cdnURL, nil
}

// EmptyFolder deletes every object under the folder prefix. Listing is
// paged; sub-folders are plain key prefixes in S3 so a flat walk covers
// them.
func (ss *SpacesStorage) EmptyFolder(folder string) error {
	prefix := folder + "/"
	var continuation *string

	for {
		out, err := ss.client.ListObjectsV2(&s3.ListObjectsV2Input{
			Bucket:            aws.String(ss.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuation,
		})
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		if len(out.Contents) == 0 {
			return nil
		}

		objects := make([]*s3.ObjectIdentifier, 0, len(out.Contents))
		for _, obj := range out.Contents {
			objects = append(objects, &s3.ObjectIdentifier{Key: obj.Key})
		}

		_, err = ss.client.DeleteObjects(&s3.DeleteObjectsInput{
			Bucket: aws.String(ss.bucket),
			Delete: &s3.Delete{Objects: objects},
		})
		if err != nil {
			return fmt.Errorf("failed to delete objects under %s: %w", prefix, err)
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			return nil
		}
		continuation = out.NextContinuationToken
	}
}
