package middleware

import (
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // echo middleware chaining
)

// RequireRole restricts a route group to users whose "role" context
// value (set by JWTAuth) is one of the given roles.  Customers, owners
// and admins each get their own group, so a USER token can never reach
// an owner or admin route even with a valid signature.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get("role").(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{
                    "success": false,
                    "error":   "forbidden",
                    "message": "insufficient role for this resource",
                })
            }
            return next(c)
        }
    }
}
