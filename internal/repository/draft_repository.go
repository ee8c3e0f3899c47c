package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/slot"
)

// draftTTL is how long a staged facility setup survives without being
// committed or touched.  Every write refreshes the clock.
const draftTTL = 24 * time.Hour

// FacilityDraft is the staged multi-step facility setup.  Owners build
// it up over several requests (details, hours, generated slots, passes)
// and commit it in a single transaction at the end.  Nothing here is
// visible to customers until the commit.
type FacilityDraft struct {
	ID        string                 `json:"id"` // correlation id handed to the client
	OwnerID   uint64                 `json:"owner_id"`
	Facility  model.Facility         `json:"facility"`
	Hours     map[int]slot.DayHours  `json:"hours,omitempty"`
	Slots     []model.TimeSlot       `json:"slots,omitempty"`
	Custom    []model.PlaygroundSlot `json:"custom_slots,omitempty"`
	Passes    []model.DurationPass   `json:"passes,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// DraftRepo stages facility drafts in Redis.  Redis is the right home
// for this state: it is per-owner scratch data with a natural TTL, and
// losing it costs a redo of the wizard, never booking data.
type DraftRepo struct {
	rdb *redis.Client
}

// NewDraftRepo constructs a DraftRepo.  The client may be nil when
// Redis is unavailable; every method then returns ErrDraftUnavailable.
func NewDraftRepo(rdb *redis.Client) *DraftRepo { return &DraftRepo{rdb: rdb} }

func draftKey(ownerID uint64, id string) string {
	return fmt.Sprintf("facility_draft:%d:%s", ownerID, id)
}

// Stage creates a new draft with a fresh correlation id and stores it.
func (r *DraftRepo) Stage(ctx context.Context, ownerID uint64, f model.Facility) (FacilityDraft, error) {
	d := FacilityDraft{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Facility: f,
	}
	if err := r.save(ctx, &d); err != nil {
		return FacilityDraft{}, err
	}
	return d, nil
}

// Load fetches a draft by owner and id.  Returns ErrDraftNotFound when
// the id is unknown or the draft has expired.
func (r *DraftRepo) Load(ctx context.Context, ownerID uint64, id string) (FacilityDraft, error) {
	if r.rdb == nil {
		return FacilityDraft{}, ErrDraftUnavailable
	}
	raw, err := r.rdb.Get(ctx, draftKey(ownerID, id)).Bytes()
	if err == redis.Nil {
		return FacilityDraft{}, ErrDraftNotFound
	}
	if err != nil {
		return FacilityDraft{}, err
	}
	var d FacilityDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		return FacilityDraft{}, err
	}
	return d, nil
}

// Update applies mutate to the stored draft and writes it back,
// refreshing the TTL.
func (r *DraftRepo) Update(ctx context.Context, ownerID uint64, id string, mutate func(*FacilityDraft)) (FacilityDraft, error) {
	d, err := r.Load(ctx, ownerID, id)
	if err != nil {
		return FacilityDraft{}, err
	}
	mutate(&d)
	if err := r.save(ctx, &d); err != nil {
		return FacilityDraft{}, err
	}
	return d, nil
}

// Delete removes a draft, typically right after a successful commit.
func (r *DraftRepo) Delete(ctx context.Context, ownerID uint64, id string) error {
	if r.rdb == nil {
		return ErrDraftUnavailable
	}
	return r.rdb.Del(ctx, draftKey(ownerID, id)).Err()
}

func (r *DraftRepo) save(ctx context.Context, d *FacilityDraft) error {
	if r.rdb == nil {
		return ErrDraftUnavailable
	}
	d.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, draftKey(d.OwnerID, d.ID), raw, draftTTL).Err()
}
