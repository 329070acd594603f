package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PeriodRequest{Year: 2024, Month: 3}).Validate())
	assert.NoError(t, (&PeriodRequest{From: "2024-03-01", To: "2024-03-31"}).Validate())
	assert.Error(t, (&PeriodRequest{Year: 2024, Month: 13}).Validate())
	assert.Error(t, (&PeriodRequest{From: "2024-03-31", To: "2024-03-01"}).Validate())
	assert.Error(t, (&PeriodRequest{From: "2024-03-01"}).Validate())
	assert.Error(t, (&PeriodRequest{From: "2023-01-01", To: "2024-06-01"}).Validate())
	assert.Error(t, (&PeriodRequest{From: "0001-01-01", To: "9999-12-31"}).Validate())
}

func TestDailyReportRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DailyReportRequest{Date: "2024-03-04"}).Validate())
	assert.Error(t, (&DailyReportRequest{Date: "04-03-2024"}).Validate())
}
