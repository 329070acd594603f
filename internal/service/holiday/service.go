package holiday

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/rickar/cal/v2"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	national []*cal.Holiday
}

// NewHolidayService combines the holiday table with fixed-date national holidays.
func NewHolidayService(repo holiday.HolidayRepository, national []*cal.Holiday) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: repo,
		national:          national,
	}
}

// NationalHoliday builds a holiday observed every year on month/day.
func NationalHoliday(name string, month time.Month, day int) *cal.Holiday {
	return &cal.Holiday{
		Name:  name,
		Type:  cal.ObservancePublic,
		Month: month,
		Day:   day,
		Func:  cal.CalcDayOfMonth,
	}
}

func (s *HolidayServiceImpl) between(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	from, to = dateutil.Date(from), dateutil.Date(to)

	stored, err := s.HolidayRepository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	all := make([]holiday.Holiday, 0, len(stored)+len(s.national))
	all = append(all, stored...)
	for year := from.Year(); year <= to.Year(); year++ {
		for _, h := range s.national {
			actual, _ := h.Calc(year)
			if actual.IsZero() {
				continue
			}
			date := dateutil.Date(actual)
			if date.Before(from) || date.After(to) {
				continue
			}
			all = append(all, holiday.Holiday{Date: date, Name: h.Name, Source: holiday.SourceNational})
		}
	}
	return all, nil
}

// HolidaySet implements holiday.HolidayService.
func (s *HolidayServiceImpl) HolidaySet(ctx context.Context, from, to time.Time) (holiday.Set, error) {
	all, err := s.between(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return holiday.NewSet(all), nil
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, req holiday.ListHolidaysRequest) ([]holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	from, _ := dateutil.Parse(req.From)
	to, _ := dateutil.Parse(req.To)

	set, err := s.HolidaySet(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]holiday.HolidayResponse, 0, len(set))
	for key, h := range set {
		out = append(out, holiday.HolidayResponse{Date: key, Name: h.Name, Source: string(h.Source)})
	}
	slices.SortFunc(out, func(a, b holiday.HolidayResponse) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out, nil
}
