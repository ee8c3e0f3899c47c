package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userID returns a stable string identity for rate-limit keying.  It
// reads the "user_id" context value left by JWTAuth; since the global
// rate limiter runs before route-level auth, most requests have no
// identity yet and fall back to "guest" (keyed by IP instead).
func userID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    case uint64:
        return strconv.FormatUint(v, 10)
    }
    return "guest"
}
