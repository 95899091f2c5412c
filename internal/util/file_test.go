package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// en-tête PDF minimal, suffisant pour la détection de type
var pdfHeader = []byte("%PDF-1.4\n%âãÏÓ\n")

// en-tête PNG (signature 8 octets + début de chunk IHDR)
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestValidateMimeType(t *testing.T) {
	t.Run("PDFAccepte", func(t *testing.T) {
		mime, err := ValidateMimeType(bytes.NewReader(pdfHeader), []string{MimePDF})
		require.NoError(t, err)
		assert.Equal(t, MimePDF, mime)
	})

	t.Run("ImageAccepteeParPrefixe", func(t *testing.T) {
		mime, err := ValidateMimeType(bytes.NewReader(pngHeader), []string{"image/"})
		require.NoError(t, err)
		assert.Equal(t, "image/png", mime)
	})

	t.Run("TexteDeguiseEnPDFRefuse", func(t *testing.T) {
		_, err := ValidateMimeType(strings.NewReader("bonjour, ceci n'est pas un PDF"), []string{MimePDF})
		assert.Error(t, err)
	})
}

func TestIsImageIsPDF(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("image/jpeg"))
	assert.False(t, IsImage("application/pdf"))

	assert.True(t, IsPDF("application/pdf"))
	assert.False(t, IsPDF("image/png"))
}

func TestHasAllowedExtension(t *testing.T) {
	allowed := []string{".pdf", ".jpg", ".png"}

	assert.True(t, HasAllowedExtension("dossier.pdf", allowed))
	assert.True(t, HasAllowedExtension("PHOTO.JPG", allowed))
	assert.False(t, HasAllowedExtension("script.exe", allowed))
	assert.False(t, HasAllowedExtension("sans_extension", allowed))
	// seule la dernière extension compte
	assert.False(t, HasAllowedExtension("piege.pdf.exe", allowed))
}

func TestStoredFilename(t *testing.T) {
	name := StoredFilename("Mon Dossier.PDF")

	assert.True(t, strings.HasSuffix(name, ".pdf"), name)
	assert.NotContains(t, name, " ")
	// horodatage (14) + underscore + uuid court (12) + extension
	assert.Len(t, name, 14+1+12+len(".pdf"))

	// deux appels ne donnent jamais le même nom
	assert.NotEqual(t, name, StoredFilename("Mon Dossier.PDF"))
}

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Equal(t, uint(0), MustParseUint("abc"))
	assert.Equal(t, uint(0), MustParseUint("-1"))
	assert.Equal(t, uint(0), MustParseUint(""))
}

func TestParsePagination(t *testing.T) {
	page, limit := ParsePagination("2", "50")
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, limit)

	page, limit = ParsePagination("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = ParsePagination("0", "1000")
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = ParsePagination("-3", "-5")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
