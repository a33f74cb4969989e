package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	ListHolidays(w http.ResponseWriter, r *http.Request)
	SyncYear(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService}
}

func (h *holidayHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	req := holiday.ListHolidaysRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.holidayService.ListHolidays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Message != "" {
		response.SuccessWithMessage(w, result.Message, result)
		return
	}
	response.Success(w, result)
}

// SyncYear pulls one year from the calendar feed. Without ?year= the current
// year is synced.
func (h *holidayHandlerImpl) SyncYear(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "Invalid year", map[string]string{"year": "must be a number"})
			return
		}
		year = parsed
	}

	result, err := h.holidayService.SyncYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holidays synchronized", result)
}
