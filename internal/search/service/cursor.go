package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"beacon_backend/internal/search/domain"
)

// cursor is the decoded form of the opaque pagination token. Hash binds the
// cursor to the query and filters it was issued for, so a reused token
// against a different query is rejected instead of paging garbage.
type cursor struct {
	Offset int    `json:"o"`
	Hash   uint32 `json:"h"`
}

func queryFingerprint(parsed domain.ParsedQuery) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.Join(parsed.Terms, " ")))
	h.Write([]byte{0})
	for _, t := range parsed.Filters.Types {
		h.Write([]byte(t))
		h.Write([]byte{0})
	}
	if parsed.Filters.OwnerID != nil {
		h.Write([]byte(parsed.Filters.OwnerID.String()))
	}
	if parsed.Filters.DateFrom != nil {
		h.Write([]byte(parsed.Filters.DateFrom.Format(time.RFC3339)))
	}
	if parsed.Filters.DateTo != nil {
		h.Write([]byte(parsed.Filters.DateTo.Format(time.RFC3339)))
	}
	return h.Sum32()
}

func encodeCursor(offset int, parsed domain.ParsedQuery) string {
	raw, _ := json.Marshal(cursor{Offset: offset, Hash: queryFingerprint(parsed)})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(token string, parsed domain.ParsedQuery) (int, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("malformed cursor: %w", err)
	}
	var c cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return 0, fmt.Errorf("malformed cursor: %w", err)
	}
	if c.Offset < 0 {
		return 0, fmt.Errorf("malformed cursor: negative offset")
	}
	if c.Hash != queryFingerprint(parsed) {
		return 0, fmt.Errorf("cursor was issued for a different query")
	}
	return c.Offset, nil
}
