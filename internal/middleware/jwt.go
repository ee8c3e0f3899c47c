package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // HTTP status codes
    "strings"  // bearer prefix handling

    "github.com/golang-jwt/jwt/v5" // JWT parsing and validation
    "github.com/labstack/echo/v4"  // echo middleware chaining
)

// JWTAuth validates a Bearer access token and stores the subject and
// role claims in the request context under "user_id" and "role".
// Protected route groups wrap themselves with this middleware; handlers
// read the identity back via c.Get.  Only HS256 tokens signed with the
// given secret are accepted.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{
                    "success": false,
                    "error":   "unauthorized",
                    "message": "missing bearer token",
                })
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                return []byte(secret), nil
            }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{
                    "success": false,
                    "error":   "unauthorized",
                    "message": "invalid or expired token",
                })
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{
                    "success": false,
                    "error":   "unauthorized",
                    "message": "malformed token claims",
                })
            }

            // Claims come back as decoded JSON values (sub is a number);
            // handlers normalize the types on read.
            c.Set("user_id", claims["sub"])
            c.Set("role", claims["role"])
            return next(c)
        }
    }
}
