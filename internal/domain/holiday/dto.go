package holiday

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type ListHolidaysRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r *ListHolidaysRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs.Add("from", "from must be in YYYY-MM-DD format")
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs.Add("to", "to must be in YYYY-MM-DD format")
	}
	if okFrom && okTo && to.Before(from) {
		errs.Add("to", "to must not be before from")
	}

	return errs.Err()
}

type HolidayResponse struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Source string `json:"source"`
}
