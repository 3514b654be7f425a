package resume

import (
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"docx": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Extension returns the lowercased text after the last dot, or "".
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// AllowedFile reports whether name has an accepted resume extension.
func AllowedFile(name string) bool {
	return strings.Contains(name, ".") && allowedExtensions[Extension(name)]
}

// IsPDF reports whether name is routed to the PDF extractor.
func IsPDF(name string) bool {
	return Extension(name) == "pdf"
}

// SecureFilename reduces a client supplied name to a flat ASCII name that is
// safe to use as a storage key. It never returns an empty string.
func SecureFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name == "" {
		return "resume"
	}
	return name
}

// StorageFilename is SecureFilename that keeps the extension of name, so an
// upload whose base sanitizes away ("резюме.pdf") is still routed by type.
func StorageFilename(name string) string {
	secure := SecureFilename(name)
	ext := Extension(name)
	if ext == "" || Extension(secure) == ext {
		return secure
	}
	return "resume." + ext
}

// StoredUploadName prefixes a secure name with a random id so concurrent
// uploads of the same file never collide.
func StoredUploadName(secureName string) string {
	return uuid.NewString() + "_" + secureName
}

// EnhancedFilename derives the rendered PDF name from a secure upload name.
func EnhancedFilename(secureName string) string {
	base := secureName
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "enhanced_" + base + "_" + suffix + ".pdf"
}

// IsEnhancedFilename reports whether name looks like a file this service rendered.
func IsEnhancedFilename(name string) bool {
	return strings.HasPrefix(name, "enhanced_") && path.Ext(name) == ".pdf"
}

// Preview truncates text to PreviewLength characters, appending "..." when cut.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + "..."
}
