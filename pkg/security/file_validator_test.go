package security

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// zipOf builds an uncompressed archive holding the named entries in order.
func zipOf(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		require.NoError(t, err)
		_, err = w.Write([]byte("<x/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestValidateResume(t *testing.T) {
	docx := zipOf(t, "[Content_Types].xml", "_rels/.rels", "word/document.xml")
	archive := zipOf(t, "payload.exe")

	tests := []struct {
		name     string
		filename string
		mime     string
		data     []byte
		valid    bool
	}{
		{"pdf accepted", "resume.pdf", "application/pdf", samplePDF, true},
		{"uppercase extension accepted", "RESUME.PDF", "application/pdf", samplePDF, true},
		{"plain text rejected", "resume.txt", "text/plain", []byte("hello world"), false},
		{"image rejected", "photo.png", "image/png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, false},
		{"extension mismatch rejected", "resume.docx", "application/pdf", samplePDF, false},
		{"spoofed pdf rejected", "resume.pdf", "application/pdf", []byte("<html><body>nope</body></html>"), false},
		{"declared type with params accepted", "resume.pdf", "application/pdf; charset=binary", samplePDF, true},
		{"docx accepted", "resume.docx", MIMEDOCX, docx, true},
		{"plain zip declared as docx rejected", "resume.docx", MIMEDOCX, archive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateResume(tt.filename, tt.mime, tt.data)
			assert.Equal(t, tt.valid, result.Valid, result.Error)
			if !tt.valid {
				assert.NotEmpty(t, result.Error)
			}
		})
	}
}
