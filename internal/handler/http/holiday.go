package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
	location       *time.Location
}

func NewHolidayHandler(holidayService holiday.HolidayService, location *time.Location) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
		location:       location,
	}
}

// List implements HolidayHandler. Without from/to it covers the current year.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year := time.Now().In(h.location).Year()
	req := holiday.ListHolidaysRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if req.From == "" && req.To == "" {
		req.From = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		req.To = time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}

	result, err := h.holidayService.ListHolidays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
