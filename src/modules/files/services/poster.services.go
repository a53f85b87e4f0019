package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"reelcollator/src/config"
	"reelcollator/src/modules/tmdb"
	"reelcollator/src/utils"

	"github.com/minio/minio-go/v7"
)

// PosterService serves a poster image by object key: Redis byte cache first,
// MinIO second, a TMDB download as the final fallback.
func PosterService(filePath string) (io.Reader, int64, string, *utils.ServiceError) {
	objectKey := strings.TrimPrefix(filePath, "/")
	minioClient := config.MinioClient
	bucketName := config.BucketName
	cacheKey := "image_cache:" + objectKey

	// 1. Try to get from Redis cache
	cached, err := config.RDB.Get(config.Ctx, cacheKey).Bytes()
	if err == nil && len(cached) > 0 {
		log.Printf("[CACHE HIT] %s", cacheKey)
		contentType := http.DetectContentType(cached)
		return bytes.NewReader(cached), int64(len(cached)), contentType, nil
	}
	log.Printf("[CACHE MISS] %s", cacheKey)

	// 2. Try to get from MinIO
	obj, err := minioClient.GetObject(context.Background(), bucketName, objectKey, minio.GetObjectOptions{})
	if err == nil {
		stat, err := obj.Stat()
		if err == nil {
			data, err := io.ReadAll(obj)
			if err == nil {
				_ = config.RDB.Set(config.Ctx, cacheKey, data, 6*time.Hour).Err()
				return bytes.NewReader(data), stat.Size, stat.ContentType, nil
			}
		}
	}

	// 3. Fallback: download from TMDB and store
	if err := StorePoster(tmdb.NewClient(), tmdb.PosterURL("/"+objectKey)); err != nil {
		return nil, 0, "", &utils.ServiceError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("object not found and failed to download: %s", objectKey),
		}
	}

	// Retry fetch
	obj, err = minioClient.GetObject(context.Background(), bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, "", &utils.ServiceError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("downloaded but failed to retrieve object: %s", objectKey),
		}
	}
	stat, err := obj.Stat()
	if err != nil {
		return nil, 0, "", &utils.ServiceError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("downloaded object but stat failed: %s", objectKey),
		}
	}
	data, err := io.ReadAll(obj)
	if err == nil {
		_ = config.RDB.Set(config.Ctx, cacheKey, data, 24*time.Hour).Err()
	}
	return bytes.NewReader(data), int64(len(data)), stat.ContentType, nil
}

// StorePoster downloads one poster from TMDB and uploads it to MinIO, keyed by
// its image path. Already-stored posters are skipped.
func StorePoster(client *tmdb.Client, posterURL string) error {
	const prefix = "https://image.tmdb.org/t/p/original/"
	if !strings.HasPrefix(posterURL, prefix) {
		return nil
	}

	minioClient := config.MinioClient
	bucketName := config.BucketName
	objectKey := strings.TrimPrefix(posterURL, prefix)

	_, err := minioClient.StatObject(context.Background(), bucketName, objectKey, minio.GetObjectOptions{})
	if err == nil {
		return nil // already stored
	}

	data, err := client.PosterBinary(context.Background(), posterURL)
	if err != nil {
		return fmt.Errorf("failed to download poster: %w", err)
	}

	exists, err := minioClient.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("failed to check/create bucket: %w", err)
	}
	if !exists {
		err = minioClient.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	_, err = minioClient.PutObject(
		context.Background(),
		bucketName,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: http.DetectContentType(data)},
	)
	if err != nil {
		return fmt.Errorf("failed to upload poster to minio: %w", err)
	}

	return nil
}
