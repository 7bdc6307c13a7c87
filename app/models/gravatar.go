package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// Gravatar returns the avatar URL for an email address.
func Gravatar(email string, size int) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("d", "retro")
	q.Set("s", fmt.Sprint(size))
	q.Set("r", "g")
	q.Set("f", "false")
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
