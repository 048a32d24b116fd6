package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TokenPrefix marks tokens issued by the simulated backend. The backend only
// recognizes its own format; any other bearer token counts as unauthenticated.
const TokenPrefix = "fake-jwt-token"

// IssueToken builds a fresh bearer token for the given user id. The token is
// an opaque composite, not a real JWT: <prefix>.<user-id>.<issue-epoch-millis>.
// Every login issues a new one; there is no reuse and no revocation.
func IssueToken(userID int, now time.Time) string {
	return fmt.Sprintf("%s.%d.%d", TokenPrefix, userID, now.UnixMilli())
}

// ParseBearer extracts the owning user id from an Authorization header value.
// It returns false for anything that is not a well-formed token of our own
// issue, which callers must treat as "not authenticated".
func ParseBearer(authHeader string) (int, bool) {
	if !strings.HasPrefix(authHeader, "Bearer "+TokenPrefix) {
		return 0, false
	}
	parts := strings.Split(strings.TrimPrefix(authHeader, "Bearer "), ".")
	if len(parts) < 2 {
		return 0, false
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return id, true
}
