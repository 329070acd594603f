package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/rickar/cal/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() holiday.HolidayService {
	store := memory.NewStore()
	store.AddHoliday(holiday.Holiday{Date: dateutil.New(2024, 1, 26), Name: "Company Republic Day"})
	store.AddHoliday(holiday.Holiday{Date: dateutil.New(2024, 3, 8), Name: "Maha Shivaratri"})

	return NewHolidayService(memory.NewHolidayRepository(store), []*cal.Holiday{
		NationalHoliday("Republic Day", time.January, 26),
		NationalHoliday("Independence Day", time.August, 15),
	})
}

func TestHolidayService_HolidaySet(t *testing.T) {
	// Setup
	svc := newService()

	// Act
	set, err := svc.HolidaySet(context.Background(), dateutil.New(2024, 1, 1), dateutil.New(2025, 12, 31))

	// Assert
	require.NoError(t, err)
	assert.Len(t, set, 5)
	assert.Equal(t, holiday.SourceCompany, set["2024-01-26"].Source, "company entry wins on the same date")
	assert.Equal(t, "Company Republic Day", set["2024-01-26"].Name)
	assert.Equal(t, holiday.SourceNational, set["2025-01-26"].Source)
	assert.True(t, set.Contains(dateutil.New(2025, 8, 15)))
}

func TestHolidayService_HolidaySet_Window(t *testing.T) {
	svc := newService()

	set, err := svc.HolidaySet(context.Background(), dateutil.New(2024, 3, 1), dateutil.New(2024, 3, 31))

	require.NoError(t, err)
	assert.Len(t, set, 1)
	assert.True(t, set.Contains(dateutil.New(2024, 3, 8)))
}

func TestHolidayService_ListHolidays(t *testing.T) {
	svc := newService()

	list, err := svc.ListHolidays(context.Background(), holiday.ListHolidaysRequest{From: "2024-01-01", To: "2024-12-31"})

	require.NoError(t, err)
	assert.Equal(t, []holiday.HolidayResponse{
		{Date: "2024-01-26", Name: "Company Republic Day", Source: "company"},
		{Date: "2024-03-08", Name: "Maha Shivaratri", Source: "company"},
		{Date: "2024-08-15", Name: "Independence Day", Source: "national"},
	}, list)
}

func TestHolidayService_ListHolidays_Validation(t *testing.T) {
	svc := newService()

	_, err := svc.ListHolidays(context.Background(), holiday.ListHolidaysRequest{From: "2024-12-31", To: "2024-01-01"})

	assert.Error(t, err)
}
