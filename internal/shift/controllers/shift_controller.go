package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkoike/shiftworks-backend/internal/roster"
	"github.com/mkoike/shiftworks-backend/internal/shift/period"
	"github.com/mkoike/shiftworks-backend/internal/shift/services"
)

type ShiftController struct {
	Service *services.ShiftService
	Builder *roster.Builder
	Now     func() time.Time
}

func NewShiftController(service *services.ShiftService, builder *roster.Builder) *ShiftController {
	return &ShiftController{
		Service: service,
		Builder: builder,
		Now:     time.Now,
	}
}

// ListShiftsHandler returns the stored shifts of an inclusive date
// range. Query parameters start and end use the format "2006-01-02".
func (sc *ShiftController) ListShiftsHandler(c echo.Context) error {
	startStr := c.QueryParam("start")
	endStr := c.QueryParam("end")
	if startStr == "" || endStr == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "start and end must be provided",
			"data":    nil,
		})
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "start must be formatted as YYYY-MM-DD",
			"data":    nil,
		})
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "end must be formatted as YYYY-MM-DD",
			"data":    nil,
		})
	}

	shifts, err := sc.Service.QueryRange(start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "failed to query shifts: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "ok",
		"data":    shifts,
	})
}

// BuildRosterHandler triggers a roster build outside the cron
// schedule. Optional query parameters: period (first_half or
// second_half, auto-detected otherwise), year, month (default: the
// current month).
func (sc *ShiftController) BuildRosterHandler(c echo.Context) error {
	now := sc.Now()

	p := period.Detect(now)
	if ps := c.QueryParam("period"); ps != "" {
		var err error
		if p, err = period.Parse(ps); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		}
	}

	year, month := now.Year(), now.Month()
	if ys := c.QueryParam("year"); ys != "" {
		y, err := strconv.Atoi(ys)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": "year must be a number",
				"data":    nil,
			})
		}
		year = y
	}
	if ms := c.QueryParam("month"); ms != "" {
		m, err := strconv.Atoi(ms)
		if err != nil || m < 1 || m > 12 {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": "month must be a number between 1 and 12",
				"data":    nil,
			})
		}
		month = time.Month(m)
	}

	xlsx, pdf, err := sc.Builder.BuildHalf(year, month, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "failed to build roster: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "roster built",
		"data": map[string]interface{}{
			"period": string(p),
			"xlsx":   xlsx,
			"pdf":    pdf,
		},
	})
}
