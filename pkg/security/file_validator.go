package security

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Lowercased file extension
	DetectedMIME string // MIME type sniffed from content
	Error        string // Error message if validation failed
}

// Resumes are PDF or DOCX only. DOCX is a ZIP container, hence the PK prefix.
var resumeMagicBytes = map[string][]byte{
	".pdf":  {0x25, 0x50, 0x44, 0x46},
	".docx": {0x50, 0x4B, 0x03, 0x04},
}

var resumeMIMETypes = map[string]string{
	MIMEPDF:  ".pdf",
	MIMEDOCX: ".docx",
}

// ValidateResume checks a resume upload in three layers:
// 1. Declared Content-Type must be PDF or DOCX
// 2. Extension must agree with the declared type
// 3. Content magic bytes and sniffed MIME must agree with the extension
func ValidateResume(filename, declaredMIME string, head []byte) FileValidationResult {
	result := FileValidationResult{}

	declared := normalizeMIME(declaredMIME)
	expectedExt, ok := resumeMIMETypes[declared]
	if !ok {
		result.Error = "Only PDF or DOCX files allowed!"
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext
	if ext != expectedExt {
		result.Error = "file extension does not match content type"
		return result
	}

	if !bytes.HasPrefix(head, resumeMagicBytes[ext]) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	detected := mimetype.Detect(head)
	result.DetectedMIME = detected.String()

	switch ext {
	case ".pdf":
		if !detected.Is(MIMEPDF) {
			result.Error = "MIME type not allowed: " + result.DetectedMIME
			return result
		}
	case ".docx":
		// A bare ZIP archive is not a document.
		if !detected.Is(MIMEDOCX) {
			result.Error = "MIME type not allowed: " + result.DetectedMIME
			return result
		}
	}

	result.Valid = true
	return result
}

func normalizeMIME(v string) string {
	if i := strings.IndexByte(v, ';'); i >= 0 {
		v = v[:i]
	}
	return strings.ToLower(strings.TrimSpace(v))
}
