package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Contraintes d'upload
const (
	MimeImage = "image/"
	MimePDF   = "application/pdf"

	MaxImageSize = 5 << 20  // 5 Mo
	MaxPDFSize   = 10 << 20 // 10 Mo
)

var (
	AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".avif"}
	AllowedDocExtensions   = []string{".pdf"}
)
