package imaging

import (
	"bytes"
	"image"
	"net/url"
	"strings"
)

// FileExtension picks an extension for image data, trying the decoded format,
// then the URL path, then the content type. Defaults to jpg.
func FileExtension(data []byte, rawURL, contentType string) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if ext := extensionFor(format); ext != "" {
			return ext
		}
	}

	if rawURL != "" {
		if u, err := url.Parse(rawURL); err == nil {
			path := strings.ToLower(u.Path)
			switch {
			case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
				return "jpg"
			case strings.HasSuffix(path, ".png"):
				return "png"
			case strings.HasSuffix(path, ".webp"):
				return "webp"
			case strings.HasSuffix(path, ".gif"):
				return "gif"
			}
		}
	}

	if contentType != "" {
		if ext := extensionFor(strings.ToLower(contentType)); ext != "" {
			return ext
		}
	}

	return "jpg"
}

func extensionFor(s string) string {
	switch {
	case strings.Contains(s, "jpeg"), strings.Contains(s, "jpg"):
		return "jpg"
	case strings.Contains(s, "png"):
		return "png"
	case strings.Contains(s, "webp"):
		return "webp"
	case strings.Contains(s, "gif"):
		return "gif"
	}
	return ""
}

// ContentType returns the MIME type for an extension returned by FileExtension
func ContentType(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
