package freeslot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/studiobook/studiobook-api/internal/domain/booking"
	"github.com/studiobook/studiobook-api/internal/domain/studio"
)

func at(hour, min int) time.Time {
	return time.Date(2023, 1, 1, hour, min, 0, 0, time.UTC)
}

type fakeCatalog struct {
	studios []studio.Studio
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []string) ([]studio.Studio, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var matched []studio.Studio
	for _, s := range f.studios {
		if wanted[s.ID] {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeCatalog) List(ctx context.Context) ([]studio.Studio, error) {
	return f.studios, nil
}

type fakeSlotStore struct {
	busy map[string][]booking.TimeSlot
}

func (f *fakeSlotStore) FindIntersecting(ctx context.Context, studioID string, from, to time.Time) ([]booking.TimeSlot, error) {
	var out []booking.TimeSlot
	for _, s := range f.busy[studioID] {
		if s.StartTime.Before(to) && s.EndTime.After(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestService(busy map[string][]booking.TimeSlot) *Service {
	catalog := &fakeCatalog{studios: []studio.Studio{
		{ID: "studio-1", HourlyRate: decimal.NewFromInt(50)},
	}}
	return NewService(&fakeSlotStore{busy: busy}, catalog)
}

func busySlot(studioID string, start, end time.Time) booking.TimeSlot {
	return booking.TimeSlot{StudioID: studioID, StartTime: start, EndTime: end}
}

func assertSlot(t *testing.T, got PricedSlot, start, end time.Time, price string) {
	t.Helper()
	if !got.StartTime.Equal(start) || !got.EndTime.Equal(end) {
		t.Errorf("slot = [%v, %v), want [%v, %v)", got.StartTime, got.EndTime, start, end)
	}
	want := decimal.RequireFromString(price)
	if !got.Price.Equal(want) {
		t.Errorf("slot price = %s, want %s", got.Price, want)
	}
}

func TestGetFreeSlots_InvalidWindow(t *testing.T) {
	svc := newTestService(nil)

	for _, window := range [][2]time.Time{
		{at(14, 0), at(10, 0)},
		{at(10, 0), at(10, 0)},
	} {
		_, err := svc.GetFreeSlots(context.Background(), window[0], window[1], nil)
		if !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("GetFreeSlots(%v, %v) error = %v, want ErrInvalidWindow", window[0], window[1], err)
		}
	}
}

func TestGetFreeSlots_UnknownStudios(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.GetFreeSlots(context.Background(), at(10, 0), at(14, 0), []string{"studio-1", "ghost"})

	var unknown *studio.UnknownStudiosError
	if !errors.As(err, &unknown) {
		t.Fatalf("GetFreeSlots() error = %v, want UnknownStudiosError", err)
	}
	if len(unknown.IDs) != 1 || unknown.IDs[0] != "ghost" {
		t.Errorf("missing ids = %v, want [ghost]", unknown.IDs)
	}
}

func TestGetFreeSlots_NoBusySlots(t *testing.T) {
	svc := newTestService(nil)

	slots, err := svc.GetFreeSlots(context.Background(), at(10, 0), at(14, 0), []string{"studio-1"})
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}

	if len(slots) != 4 {
		t.Fatalf("got %d free slots, want 4", len(slots))
	}
	assertSlot(t, slots[0], at(10, 0), at(11, 0), "50")
	assertSlot(t, slots[1], at(11, 0), at(12, 0), "50")
	assertSlot(t, slots[2], at(12, 0), at(13, 0), "50")
	assertSlot(t, slots[3], at(13, 0), at(14, 0), "50")
}

func TestGetFreeSlots_SplitsAroundBusySlot(t *testing.T) {
	svc := newTestService(map[string][]booking.TimeSlot{
		"studio-1": {busySlot("studio-1", at(11, 0), at(13, 0))},
	})

	slots, err := svc.GetFreeSlots(context.Background(), at(10, 0), at(14, 0), []string{"studio-1"})
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("got %d free slots, want 2", len(slots))
	}
	assertSlot(t, slots[0], at(10, 0), at(11, 0), "50")
	assertSlot(t, slots[1], at(13, 0), at(14, 0), "50")
}

func TestGetFreeSlots_FullyBooked(t *testing.T) {
	svc := newTestService(map[string][]booking.TimeSlot{
		"studio-1": {busySlot("studio-1", at(10, 0), at(14, 0))},
	})

	slots, err := svc.GetFreeSlots(context.Background(), at(10, 0), at(14, 0), []string{"studio-1"})
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("got %d free slots, want 0", len(slots))
	}
}

func TestGetFreeSlots_WindowInsideBusySlot(t *testing.T) {
	svc := newTestService(map[string][]booking.TimeSlot{
		"studio-1": {busySlot("studio-1", at(9, 0), at(18, 0))},
	})

	slots, err := svc.GetFreeSlots(context.Background(), at(11, 0), at(12, 0), []string{"studio-1"})
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("got %d free slots, want 0", len(slots))
	}
}

func TestGetFreeSlots_PartialFinalChunk(t *testing.T) {
	// Chunks anchor at the region start, not at wall-clock hours: a window
	// opening at 13:30 yields 13:30-14:30, then a truncated 14:30-15:15.
	svc := newTestService(nil)

	slots, err := svc.GetFreeSlots(context.Background(), at(13, 30), at(15, 15), []string{"studio-1"})
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("got %d free slots, want 2", len(slots))
	}
	assertSlot(t, slots[0], at(13, 30), at(14, 30), "50")
	assertSlot(t, slots[1], at(14, 30), at(15, 15), "37.5")
}

func TestGetFreeSlots_ShortGapBetweenBusySlots(t *testing.T) {
	svc := newTestService(map[string][]booking.TimeSlot{
		"studio-1": {
			busySlot("studio-1", at(10, 0), at(11, 0)),
			busySlot("studio-1", at(11, 30), at(14, 0)),
		},
	})

	slots, err := svc.GetFreeSlots(context.Background(), at(10, 0), at(14, 0), []string{"studio-1"})
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("got %d free slots, want 1", len(slots))
	}
	assertSlot(t, slots[0], at(11, 0), at(11, 30), "25")
}

func TestGetFreeSlots_BusySlotCrossingWindowEdge(t *testing.T) {
	// Busy slot starts before the window; the free region begins where it
	// ends.
	svc := newTestService(map[string][]booking.TimeSlot{
		"studio-1": {busySlot("studio-1", at(8, 0), at(11, 0))},
	})

	slots, err := svc.GetFreeSlots(context.Background(), at(10, 0), at(13, 0), []string{"studio-1"})
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("got %d free slots, want 2", len(slots))
	}
	assertSlot(t, slots[0], at(11, 0), at(12, 0), "50")
	assertSlot(t, slots[1], at(12, 0), at(13, 0), "50")
}

func TestGetFreeSlots_AllStudiosWhenIDsOmitted(t *testing.T) {
	catalog := &fakeCatalog{studios: []studio.Studio{
		{ID: "studio-1", HourlyRate: decimal.NewFromInt(50)},
		{ID: "studio-2", HourlyRate: decimal.NewFromInt(600)},
	}}
	svc := NewService(&fakeSlotStore{}, catalog)

	slots, err := svc.GetFreeSlots(context.Background(), at(10, 0), at(12, 0), nil)
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}

	// Two hour chunks per studio.
	if len(slots) != 4 {
		t.Fatalf("got %d free slots, want 4", len(slots))
	}
	perStudio := make(map[string]int)
	for _, s := range slots {
		perStudio[s.StudioID]++
	}
	if perStudio["studio-1"] != 2 || perStudio["studio-2"] != 2 {
		t.Errorf("slots per studio = %v, want 2 each", perStudio)
	}
}

func TestGetFreeSlots_ChunksStrictlyIncreasePerStudio(t *testing.T) {
	svc := newTestService(map[string][]booking.TimeSlot{
		"studio-1": {
			busySlot("studio-1", at(11, 15), at(12, 45)),
		},
	})

	slots, err := svc.GetFreeSlots(context.Background(), at(9, 0), at(16, 0), []string{"studio-1"})
	if err != nil {
		t.Fatalf("GetFreeSlots() error = %v", err)
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i-1].StartTime.Before(slots[i].StartTime) {
			t.Fatalf("chunk %d start %v not after chunk %d start %v", i, slots[i].StartTime, i-1, slots[i-1].StartTime)
		}
		if slots[i-1].EndTime.After(slots[i].StartTime) {
			t.Fatalf("chunk %d overlaps chunk %d", i, i-1)
		}
	}
}
