package export

import (
	"strings"
)

// Naming defaults
const (
	DefaultBaseName  = "download"
	DefaultExtension = "png"
)

// SanitizeTitle keeps only ASCII letters and digits, lower-cased.
// An empty result becomes DefaultBaseName.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultBaseName
	}
	return b.String()
}

// ExtensionFor derives a file extension from a media type subtype:
// image/png -> png, image/jpeg -> jpeg, anything unusable -> png
func ExtensionFor(mediaType string) string {
	mediaType, _, _ = strings.Cut(mediaType, ";")
	_, subtype, found := strings.Cut(strings.TrimSpace(mediaType), "/")
	if !found {
		return DefaultExtension
	}

	var b strings.Builder
	for _, r := range strings.ToLower(subtype) {
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultExtension
	}
	return b.String()
}

// FileName builds the saved file name for a title and payload media type
func FileName(title, mediaType string) string {
	return SanitizeTitle(title) + "." + ExtensionFor(mediaType)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
