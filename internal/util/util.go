// Package util contains small helpers shared across layers.
package util

import "strings"

// Slugify derives a URL-safe storefront slug from a store name. Letters and
// digits are lowered; every other run of characters collapses into a single
// hyphen, with no leading or trailing hyphen. The result is deterministic,
// so the same store name always yields the same slug.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			if b.Len() > 0 {
				pendingHyphen = true
			}

			continue
		}

		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
