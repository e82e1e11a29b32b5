// Package gravatar builds avatar URLs for article authors.
package gravatar

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// Options control how avatar URLs are built. The zero value disables avatars.
type Options struct {
	Enabled      bool
	DefaultImage string
	Rating       string
	Size         int
}

// URL returns the Gravatar URL for the given email address.
// Returns an empty string if Gravatar is disabled or the email is empty.
// The email itself is never exposed, only its hash.
func URL(email string, opts Options) string {
	if !opts.Enabled || email == "" {
		return ""
	}

	email = strings.TrimSpace(strings.ToLower(email))
	hash := sha256.Sum256([]byte(email))

	params := url.Values{}
	if opts.DefaultImage != "" {
		params.Add("d", opts.DefaultImage)
	}
	if opts.Rating != "" {
		params.Add("r", opts.Rating)
	}
	if opts.Size > 0 {
		params.Add("s", strconv.Itoa(opts.Size))
	}

	u := baseURL + hex.EncodeToString(hash[:])
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// IsValidDefaultImage checks if the default image value is one Gravatar accepts.
func IsValidDefaultImage(defaultImage string) bool {
	switch defaultImage {
	case "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank":
		return true
	}
	return false
}

// IsValidRating checks if the rating value is one Gravatar accepts.
func IsValidRating(rating string) bool {
	switch rating {
	case "g", "pg", "r", "x":
		return true
	}
	return false
}

// IsValidSize checks if the size is within Gravatar's 1-2048 pixel range.
func IsValidSize(size int) bool {
	return size >= 1 && size <= 2048
}
