package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"olympiades_backend/internal/config"
	"olympiades_backend/internal/util"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider : interface de stockage des fichiers (documents des
// candidats, images du site, certificats générés)
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

// LocalStorageProvider stocke sur le disque local
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	if err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, filename string) error {
	dst := filepath.Join(p.Config.LocalPath, filename)
	return os.Remove(dst)
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

// MinioStorageProvider : MinIO ou tout stockage compatible S3
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	if p.Config.CDNBaseURL != "" {
		return p.Config.CDNBaseURL + "/" + filename
	}
	scheme := "http"
	if p.Config.MinioUseSSL {
		scheme = "https"
	}
	return scheme + "://" + p.Config.MinioEndpoint + "/" + p.Config.MinioBucket + "/" + filename
}

type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	switch cfg.Storage.Type {
	case util.StorageMinio:
		provider, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		return &StorageService{Provider: provider}, nil
	default:
		return &StorageService{Provider: &LocalStorageProvider{Config: &cfg.Storage}}, nil
	}
}

func (s *StorageService) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, filename, reader, size, contentType)
}

func (s *StorageService) Delete(ctx context.Context, filename string) error {
	return s.Provider.Delete(ctx, filename)
}

func (s *StorageService) GetURL(filename string) string {
	return s.Provider.GetURL(filename)
}

// uploadMultipart valide puis stocke un fichier reçu en multipart sous
// prefix/<nom généré>, et retourne l'URL publique
func (s *StorageService) uploadMultipart(file *multipart.FileHeader, prefix string, maxSize int64, allowedExts, allowedMimes []string) (string, error) {
	if file.Size > maxSize {
		return "", errors.New("Fichier trop volumineux")
	}
	if !util.HasAllowedExtension(file.Filename, allowedExts) {
		return "", errors.New("Extension de fichier non autorisée")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, allowedMimes)
	if err != nil {
		return "", errors.New("Type de fichier non autorisé : " + mimeType)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	stored := prefix + "/" + util.StoredFilename(file.Filename)
	return s.Provider.Upload(context.Background(), stored, src, file.Size, mimeType)
}

// UploadImage stocke une image (photo de candidat, illustration, logo)
func (s *StorageService) UploadImage(file *multipart.FileHeader, prefix string) (string, error) {
	return s.uploadMultipart(file, prefix, util.MaxImageSize, util.AllowedImageExtensions, []string{util.MimeImage})
}

// UploadDocument stocke un justificatif PDF
func (s *StorageService) UploadDocument(file *multipart.FileHeader, prefix string) (string, error) {
	return s.uploadMultipart(file, prefix, util.MaxPDFSize, util.AllowedDocExtensions, []string{util.MimePDF})
}

// DeleteByURL supprime un fichier à partir de son URL publique. Best effort :
// un fichier déjà absent n'est pas une erreur
func (s *StorageService) DeleteByURL(url string) {
	filename := url
	if i := strings.Index(url, "/uploads/"); i >= 0 {
		filename = url[i+len("/uploads/"):]
	} else if i := strings.LastIndex(url, "://"); i >= 0 {
		// URL MinIO/CDN : on garde le chemin après le bucket
		parts := strings.SplitN(url[i+3:], "/", 3)
		if len(parts) == 3 {
			filename = parts[2]
		}
	}
	_ = s.Provider.Delete(context.Background(), filename)
}
