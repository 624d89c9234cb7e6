package seen

import (
	"crypto/sha1"
	"encoding/hex"
)

// Identity returns the deduplication key for an article URL. The raw URL is
// hashed as-is: trailing-slash or query-parameter variants of the same
// article count as distinct articles.
func Identity(url string) string {
	hash := sha1.Sum([]byte(url))
	return hex.EncodeToString(hash[:])
}
