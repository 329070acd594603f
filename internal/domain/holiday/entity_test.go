package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSet_CompanyEntryWins(t *testing.T) {
	day := time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC)
	set := NewSet([]Holiday{
		{Date: day, Name: "Company Day", Source: SourceCompany},
		{Date: day, Name: "Republic Day", Source: SourceNational},
	})

	assert.True(t, set.Contains(day))
	assert.False(t, set.Contains(day.AddDate(0, 0, 1)))
	assert.Equal(t, "Company Day", set["2024-01-26"].Name)
}
