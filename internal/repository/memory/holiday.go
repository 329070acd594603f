package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
)

type holidayRepository struct {
	store *Store
}

func NewHolidayRepository(store *Store) holiday.HolidayRepository {
	return &holidayRepository{store: store}
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []holiday.Holiday
	for _, h := range r.store.holidays {
		if dateutil.Within(h.Date, from, to) {
			out = append(out, h)
		}
	}
	slices.SortFunc(out, func(a, b holiday.Holiday) int {
		return a.Date.Compare(b.Date)
	})
	return out, nil
}

// Upsert stores a company holiday, replacing any entry on the same date.
func (r *holidayRepository) Upsert(ctx context.Context, h holiday.Holiday) error {
	r.store.AddHoliday(h)
	return nil
}
