// ABOUTME: Resume file checks run before any upload is attempted
// ABOUTME: Sniffs the content type with mimetype and enforces the size ceiling

package validate

import (
	"github.com/gabriel-vasile/mimetype"
)

// MaxResumeBytes is the largest accepted resume, inclusive.
const MaxResumeBytes = 10 * 1024 * 1024

const (
	MsgResumeNotPDF   = "Please upload a PDF file"
	MsgResumeTooLarge = "File size must be less than 10MB"
	MsgResumeUpload   = "Failed to upload resume. Please try again."
)

// PDFMime is the only content type accepted for resumes.
const PDFMime = "application/pdf"

// ResumeFile checks the type first, then the size, and returns the first
// failing message or "".
func ResumeFile(data []byte) string {
	if !mimetype.Detect(data).Is(PDFMime) {
		return MsgResumeNotPDF
	}
	if len(data) > MaxResumeBytes {
		return MsgResumeTooLarge
	}
	return ""
}
