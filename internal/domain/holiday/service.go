package holiday

import (
	"context"
	"time"
)

// HolidayService merges the holiday table with configured national holidays.
type HolidayService interface {
	ListHolidays(ctx context.Context, req ListHolidaysRequest) ([]HolidayResponse, error)
	// HolidaySet returns every holiday in [from, to] for status resolution.
	HolidaySet(ctx context.Context, from, to time.Time) (Set, error)
}
