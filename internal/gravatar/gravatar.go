package gravatar

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// URL derives the protocol-relative gravatar URL for an email address.
// The address is trimmed and lowercased before hashing, per the gravatar spec.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("//www.gravatar.com/avatar/%x", hash)
}
