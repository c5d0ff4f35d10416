package storage

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"
)

// Key prefixes.
const (
	prefixUser     = "user:"
	prefixBookmark = "bm:"
	prefixFolder   = "folder:"
	prefixTagCount = "tagcount:" // tagcount:{userID}:{tag} -> uint64
	prefixBmCount  = "bmcount:"  // bmcount:{userID} -> uint64
)

// Index names.
const (
	indexURL     = "url"
	indexRecency = "recency"
	indexFolder  = "folder"
	indexName    = "name"
	indexOwner   = "owner"
)

// recencyKey sorts newest first: the timestamp is inverted so ascending key
// order is descending creation time.
func recencyKey(userID string, createdAt time.Time, id string) string {
	return fmt.Sprintf("%s:%019d:%s", userID, math.MaxInt64-createdAt.UnixNano(), id)
}

func tagCountKey(userID, tag string) []byte {
	return []byte(prefixTagCount + userID + ":" + tag)
}

func tagCountPrefix(userID string) []byte {
	return []byte(prefixTagCount + userID + ":")
}

func bookmarkCountKey(userID string) []byte {
	return []byte(prefixBmCount + userID)
}

func encodeCount(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)

	return buf
}

func decodeCount(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}

	return binary.BigEndian.Uint64(b)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
