// Package memory provides in-process repositories for tests. They honor the
// same contracts as the document store implementations, including slot key
// uniqueness and optimistic versioning.
package memory

import (
	"context"
	"sort"
	"sync"

	"tourbook/database/repository"
	bookingRepo "tourbook/database/repository/booking"
	"tourbook/models"
)

// BookingRepo is an in-memory bookingRepo.BookingRepository.
type BookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	slots    map[string]string

	// Err, when set, is returned by every read and write.
	Err error
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{bookings: make(map[string]models.Booking), slots: make(map[string]string)}
}

func (r *BookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, exists := r.bookings[b.ID]; exists {
		return repository.ErrDuplicate
	}
	if b.SlotKey != "" {
		if _, taken := r.slots[b.SlotKey]; taken {
			return repository.ErrSlotTaken
		}
		r.slots[b.SlotKey] = b.ID
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepo) List(_ context.Context, f bookingRepo.Filter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.Booking{}
	for _, b := range r.bookings {
		if f.ProviderID != "" && b.ProviderID != f.ProviderID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Date != "" && b.Date != f.Date {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *BookingRepo) ListActiveOnDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	all, err := r.List(ctx, bookingRepo.Filter{ProviderID: providerID, Date: date})
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, b := range all {
		if b.Active() {
			active = append(active, b)
		}
	}
	return active, nil
}

func (r *BookingRepo) Update(_ context.Context, b *models.Booking, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	current, ok := r.bookings[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if current.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	if b.SlotKey != "" && b.SlotKey != current.SlotKey {
		if holder, taken := r.slots[b.SlotKey]; taken && holder != b.ID {
			return repository.ErrSlotTaken
		}
	}
	if current.SlotKey != "" && current.SlotKey != b.SlotKey {
		delete(r.slots, current.SlotKey)
	}
	if b.SlotKey != "" {
		r.slots[b.SlotKey] = b.ID
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) Delete(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if b.SlotKey != "" {
		delete(r.slots, b.SlotKey)
	}
	delete(r.bookings, id)
	return &b, nil
}
