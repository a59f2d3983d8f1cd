// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxFormSize bounds admin and contact form submissions.
	MaxFormSize = 1 << 20 // 1 MB

	// MaxImageUploadSize bounds a single /api/upload request.
	MaxImageUploadSize = 10 << 20 // 10 MB

	// MaxBulkGalleryURLs caps the lines accepted by the bulk gallery form.
	MaxBulkGalleryURLs = 50
)
