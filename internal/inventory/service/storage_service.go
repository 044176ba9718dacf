package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// 允许上传的图片类型
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// StorageService 对象存储服务，负责产品图片等文件
type StorageService struct {
	minioClient *minio.Client
	bucketName  string
	logger      *zap.Logger
}

func NewStorageService(minioClient *minio.Client, bucketName string, logger *zap.Logger) *StorageService {
	return &StorageService{
		minioClient: minioClient,
		bucketName:  bucketName,
		logger:      logger,
	}
}

// EnsureBucket 启动时确保桶存在
func (s *StorageService) EnsureBucket(ctx context.Context) error {
	if s.minioClient == nil {
		return nil
	}
	exists, err := s.minioClient.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.minioClient.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket: %w", err)
		}
	}
	return nil
}

// UploadProductImage 上传产品图片，返回对象路径
func (s *StorageService) UploadProductImage(ctx context.Context, reader io.Reader, fileName string, fileSize int64, contentType string) (string, error) {
	if s.minioClient == nil {
		return "", illegalStateError("对象存储未配置")
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return "", validationError("不支持的图片类型: " + contentType)
	}

	objectName := fmt.Sprintf("products/%s/%s%s",
		time.Now().Format("2006/01/02"),
		uuid.New().String()[:8],
		filepath.Ext(fileName))

	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	s.logger.Info("product image uploaded",
		zap.String("object", objectName),
		zap.Int64("size", fileSize))
	return objectName, nil
}

// PresignedImageURL 生成图片的临时访问链接
func (s *StorageService) PresignedImageURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if s.minioClient == nil {
		return "", illegalStateError("对象存储未配置")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}
	u, err := s.minioClient.PresignedGetObject(ctx, s.bucketName, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return u.String(), nil
}

// DeleteObject 删除对象
func (s *StorageService) DeleteObject(ctx context.Context, objectName string) error {
	if s.minioClient == nil || objectName == "" {
		return nil
	}
	return s.minioClient.RemoveObject(ctx, s.bucketName, objectName, minio.RemoveObjectOptions{})
}
