package composer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

const (
	maxSlugBase = 80
	slugHashLen = 8
)

// Slugify lowercases s, drops everything outside [a-z0-9 whitespace -], turns
// whitespace runs into single hyphens, collapses repeated hyphens, trims
// hyphens and caps the length. It is idempotent on its own output.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
		if b.Len() >= maxSlugBase {
			break
		}
	}

	slug := b.String()
	if len(slug) > maxSlugBase {
		slug = slug[:maxSlugBase]
	}
	return strings.Trim(slug, "-")
}

// UniqueSlug appends a short stable hash of key to the slug of title.
func UniqueSlug(title, key string) string {
	if key == "" {
		key = title
	}
	sum := sha256.Sum256([]byte(key))
	suffix := hex.EncodeToString(sum[:])[:slugHashLen]

	base := Slugify(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
