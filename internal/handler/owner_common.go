package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "regexp"  // regexp validates HH:MM time strings
    "strconv" // strconv converts strings to numeric types
    "time"    // time validates calendar dates

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/playground-booking/internal/config"     // config carries booking tunables
    "github.com/iliyamo/playground-booking/internal/repository" // repository holds data access layer
)

// OwnerHandler bundles repositories for owners to manage their
// facilities, slots, passes and incoming bookings.
type OwnerHandler struct {
    Cfg             config.Config
    FacilityRepo    *repository.FacilityRepo
    TimeSlotRepo    *repository.TimeSlotRepo
    PlaySlotRepo    *repository.PlaygroundSlotRepo
    PassRepo        *repository.PassRepo
    BookingRepo     *repository.BookingRepo
    DraftRepo       *repository.DraftRepo
    CatalogRepo     *repository.CatalogRepo
    PurchaseRepo    *repository.PassPurchaseRepo
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any
// required dependency is nil.  DraftRepo is optional (nil disables
// staging when Redis is down).
func NewOwnerHandler(cfg config.Config, fr *repository.FacilityRepo, tr *repository.TimeSlotRepo, pr *repository.PlaygroundSlotRepo, dr *repository.PassRepo, br *repository.BookingRepo, draft *repository.DraftRepo, cat *repository.CatalogRepo, pur *repository.PassPurchaseRepo) *OwnerHandler {
    if fr == nil || tr == nil || pr == nil || dr == nil || br == nil || cat == nil || pur == nil {
        panic("nil repository passed to NewOwnerHandler")
    }
    return &OwnerHandler{
        Cfg:          cfg,
        FacilityRepo: fr,
        TimeSlotRepo: tr,
        PlaySlotRepo: pr,
        PassRepo:     dr,
        BookingRepo:  br,
        DraftRepo:    draft,
        CatalogRepo:  cat,
        PurchaseRepo: pur,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// parseID parses a positive uint64 path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    n, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || n == 0 {
        return 0, false
    }
    return n, true
}

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// validTime reports whether s is a well-formed HH:MM clock time.
func validTime(s string) bool { return hhmmRe.MatchString(s) }

// parseDate parses a strict YYYY-MM-DD calendar date.  Malformed input
// is rejected rather than silently matched against nothing.
func parseDate(s string) (time.Time, bool) {
    t, err := time.Parse("2006-01-02", s)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}
