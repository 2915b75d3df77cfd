package service

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"commons/internal/models"
)

const pageTokenVersion = "v1"

// encodePageToken builds an opaque cursor positioned after seq.
func encodePageToken(groupID uint, seq uint64) string {
	raw := fmt.Sprintf("%s:%d:%d", pageTokenVersion, groupID, seq)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodePageToken returns the seq a token resumes after. An empty token
// starts from the beginning. Tokens minted for another group are rejected.
func decodePageToken(token string, groupID uint) (uint64, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, models.NewValidationError("invalid page token")
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 || parts[0] != pageTokenVersion {
		return 0, models.NewValidationError("invalid page token")
	}
	gid, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, models.NewValidationError("invalid page token")
	}
	if uint(gid) != groupID {
		return 0, models.NewValidationError("page token belongs to another group")
	}
	seq, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return 0, models.NewValidationError("invalid page token")
	}
	return seq, nil
}
