package service

import (
	"context"
	"errors"
	"io"
	"mindcheck_backend/internal/config"
	"mindcheck_backend/internal/util"
	"mindcheck_backend/pkg/logger"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 保存导出文件。文件不通过公开路由提供，
// 只能经管理员下载接口读取或通过带签名的临时链接访问。
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	SignedURL(ctx context.Context, filename string, expiry time.Duration) (string, error)
}

// ExportDownloadPath 管理员下载导出文件的路由前缀
const ExportDownloadPath = "/api/admin/exports/"

// LocalStorageProvider 写入 cfg.LocalPath 目录
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) fullPath(filename string) string {
	return filepath.Join(p.Config.LocalPath, filepath.FromSlash(filename))
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error {
	dst := p.fullPath(filename)
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

func (p *LocalStorageProvider) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	f, err := os.Open(p.fullPath(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.ErrExportNotFound
		}
		return nil, err
	}
	return f, nil
}

// SignedURL 本地存储没有签名能力，返回需要管理员令牌的下载接口
func (p *LocalStorageProvider) SignedURL(ctx context.Context, filename string, expiry time.Duration) (string, error) {
	return ExportDownloadPath + path.Base(filename), nil
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioStorageProvider) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	obj, err := p.Client.GetObject(ctx, p.Config.MinioBucket, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject 是惰性的，Stat 才会暴露对象不存在
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, util.ErrExportNotFound
		}
		return nil, err
	}
	return obj, nil
}

func (p *MinioStorageProvider) SignedURL(ctx context.Context, filename string, expiry time.Duration) (string, error) {
	u, err := p.Client.PresignedGetObject(ctx, p.Config.MinioBucket, filename, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

type OSSStorageProvider struct {
	Config *config.StorageConfig
	Bucket *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Bucket: bucket}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error {
	return p.Bucket.PutObject(filename, reader, oss.ContentType(contentType), oss.ObjectACL(oss.ACLPrivate))
}

func (p *OSSStorageProvider) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	body, err := p.Bucket.GetObject(filename)
	if err != nil {
		var svcErr oss.ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == 404 {
			return nil, util.ErrExportNotFound
		}
		return nil, err
	}
	return body, nil
}

func (p *OSSStorageProvider) SignedURL(ctx context.Context, filename string, expiry time.Duration) (string, error) {
	return p.Bucket.SignURL(filename, oss.HTTPGet, int64(expiry/time.Second))
}

type StorageService struct {
	Provider StorageProvider
}

// NewStorageService 远程存储初始化失败时退回本地存储
func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("minio storage unavailable, using local", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("oss storage unavailable, using local", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageLocal, "":
	default:
		logger.Log.Warn("unknown storage type, using local", zap.String("type", cfg.Storage.Type))
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

func (s *StorageService) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) error {
	return s.Provider.Upload(ctx, filename, reader, size, contentType)
}

func (s *StorageService) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	return s.Provider.Open(ctx, filename)
}

func (s *StorageService) SignedURL(ctx context.Context, filename string, expiry time.Duration) (string, error) {
	return s.Provider.SignedURL(ctx, filename, expiry)
}
