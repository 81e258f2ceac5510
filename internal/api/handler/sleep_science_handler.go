package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/service"
	"github.com/somnolab/sleep-science/pkg/problem"
)

// SleepScienceHandler exposes the sleep science engine: baseline, debt,
// daily need, energy curve, chronotype and data sufficiency.
type SleepScienceHandler struct {
	baselineService   service.BaselineService
	debtService       service.DebtService
	dailyNeedService  service.DailyNeedService
	curveService      service.EnergyCurveService
	chronotypeService service.ChronotypeService
	sufficiency       service.SufficiencyService
}

func NewSleepScienceHandler(
	baselineService service.BaselineService,
	debtService service.DebtService,
	dailyNeedService service.DailyNeedService,
	curveService service.EnergyCurveService,
	chronotypeService service.ChronotypeService,
	sufficiency service.SufficiencyService,
) *SleepScienceHandler {
	return &SleepScienceHandler{
		baselineService:   baselineService,
		debtService:       debtService,
		dailyNeedService:  dailyNeedService,
		curveService:      curveService,
		chronotypeService: chronotypeService,
		sufficiency:       sufficiency,
	}
}

// CalculateBaseline handles POST /v1/users/{userId}/sleep/baseline
// @Summary Calculate baseline sleep need
// @Description Run the MCTQ baseline calculation over the trailing window and persist the result. Insufficient data is reported in the body, not as an HTTP error.
// @Tags sleep-science
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param window_days query integer false "Lookback window in days" default(90) minimum(14) maximum(365)
// @Success 200 {object} domain.BaselineResult "Baseline calculation outcome"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/baseline [post]
func (h *SleepScienceHandler) CalculateBaseline(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	windowDays := parseIntParam(r, "window_days", 90)
	if windowDays < 14 || windowDays > 365 {
		problem.BadRequest("window_days must be between 14 and 365").Write(w)
		return
	}

	result, err := h.baselineService.Calculate(r.Context(), userID, windowDays)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to calculate baseline").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetDebt handles GET /v1/users/{userId}/sleep/debt
// @Summary Get rolling sleep debt
// @Description Compute the recency-weighted sleep debt over the last 14 days with a per-night breakdown.
// @Tags sleep-science
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.DebtResult "Sleep debt"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/debt [get]
func (h *SleepScienceHandler) GetDebt(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.debtService.Compute(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to calculate sleep debt").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetMCTQStats handles GET /v1/users/{userId}/sleep/mctq
// @Summary Get stored MCTQ state
// @Description Return the stored profile, the latest calculation run and the weekday classifications.
// @Tags sleep-science
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.MCTQStatsResponse "Stored MCTQ state"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/mctq [get]
func (h *SleepScienceHandler) GetMCTQStats(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.baselineService.Stats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to load MCTQ stats").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetDailyNeed handles GET /v1/users/{userId}/sleep/daily-need
// @Summary Get daily sleep-need target
// @Description Compose baseline and current debt into a target for a date and persist it. Idempotent per (user, date).
// @Tags sleep-science
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param date query string false "Target date (YYYY-MM-DD, default today)" example(2024-01-16)
// @Success 200 {object} domain.DailyNeedResponse "Daily sleep need"
// @Failure 400 {object} problem.Problem "Invalid date"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/daily-need [get]
func (h *SleepScienceHandler) GetDailyNeed(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	date := time.Now().UTC()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			problem.BadRequest("date must be in YYYY-MM-DD format").Write(w)
			return
		}
	}

	need, err := h.dailyNeedService.GetDailyNeed(r.Context(), userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute daily sleep need").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(need.ToResponse())
}

// GetEnergyCurve handles GET /v1/users/{userId}/sleep/energy-curve
// @Summary Get 24-hour energy curve
// @Description Generate the 96-point two-process alertness curve for the day, with the current point and next peak/dip.
// @Tags sleep-science
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.CurveResult "Energy curve outcome"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/energy-curve [get]
func (h *SleepScienceHandler) GetEnergyCurve(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.curveService.Compute(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to generate energy curve").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetChronotype handles GET /v1/users/{userId}/sleep/chronotype
// @Summary Get chronotype classification
// @Description Classify the user's chronotype from their median wake hour over the last 30 days.
// @Tags sleep-science
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.ChronotypeResult "Chronotype outcome"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/chronotype [get]
func (h *SleepScienceHandler) GetChronotype(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.chronotypeService.Compute(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to classify chronotype").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// CheckSufficiency handles GET /v1/users/{userId}/sleep/sufficiency
// @Summary Check data sufficiency
// @Description Report whether enough history exists for a reliable baseline, and how much more is needed.
// @Tags sleep-science
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.SufficiencyResult "Sufficiency check"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/sufficiency [get]
func (h *SleepScienceHandler) CheckSufficiency(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.sufficiency.Check(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to check data sufficiency").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
