package util

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidateMimeType détecte le type MIME réel du flux et le confronte à la
// liste autorisée (préfixe ou type complet, ex. "image/", "application/pdf")
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func IsPDF(mimeType string) bool {
	return mimeType == MimePDF
}

// HasAllowedExtension compare l'extension (insensible à la casse)
func HasAllowedExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// StoredFilename génère un nom de stockage unique en conservant
// l'extension d'origine : 20060102150405_<uuid12>.ext
func StoredFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return time.Now().Format("20060102150405") + "_" + id + ext
}
