package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/timeutil"
)

type ShiftServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	settingsRepo settings.SettingsRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository, settingsRepo settings.SettingsRepository) shift.ShiftService {
	return &ShiftServiceImpl{
		shiftRepo:    shiftRepo,
		settingsRepo: settingsRepo,
	}
}

// Helper to get user_id from JWT context
func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// buildShift turns a validated request into an entity. Hours are derived
// from the clock times once, here; a pure advance always stores zero hours.
func buildShift(userID string, req shift.CreateShiftRequest) (shift.Shift, error) {
	date, ok := parseDate(req.Date)
	if !ok {
		return shift.Shift{}, fmt.Errorf("invalid date %q", req.Date)
	}

	hours := 0.0
	if !req.IsAdvance {
		var err error
		hours, err = timeutil.CalculateHours(req.StartTime, req.EndTime)
		if err != nil {
			return shift.Shift{}, err
		}
	}

	advance := decimal.Zero
	if req.Advance != nil {
		advance = *req.Advance
	}

	return shift.Shift{
		UserID:    userID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Hours:     hours,
		Notes:     req.Notes,
		Advance:   advance,
		IsAdvance: req.IsAdvance,
	}, nil
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	return t, err == nil
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	entity, err := buildShift(userID, req)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	entity.ID = uuid.NewString()

	created, err := s.shiftRepo.Create(ctx, entity)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toResponse(created), nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	found, err := s.shiftRepo.GetByID(ctx, id, userID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toResponse(found), nil
}

// List implements shift.ShiftService. Shifts come back newest-first with
// week boundaries marked for client-side grouping.
func (s *ShiftServiceImpl) List(ctx context.Context) (shift.ListShiftsResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	userSettings, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		if err == settings.ErrSettingsNotFound {
			userSettings = settings.Defaults(userID)
		} else {
			return shift.ListShiftsResponse{}, err
		}
	}

	shifts, err := s.shiftRepo.ListByUser(ctx, userID)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	var previous *time.Time
	for i := range shifts {
		resp := toResponse(shifts[i])
		resp.IsNewWeek = timeutil.IsNewWeek(shifts[i].Date, previous, userSettings.WeekStartDay)
		responses = append(responses, resp)
		previous = &shifts[i].Date
	}

	return shift.ListShiftsResponse{Shifts: responses}, nil
}

// Update implements shift.ShiftService. All fields are replaced; the id
// survives. Last write wins, there is no conflict handling.
func (s *ShiftServiceImpl) Update(ctx context.Context, id string, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	// Ensure the record exists and belongs to the caller.
	if _, err := s.shiftRepo.GetByID(ctx, id, userID); err != nil {
		return shift.ShiftResponse{}, err
	}

	entity, err := buildShift(userID, req.CreateShiftRequest)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	entity.ID = id

	updated, err := s.shiftRepo.Update(ctx, entity)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.shiftRepo.Delete(ctx, id, userID)
}

// Clear implements shift.ShiftService.
func (s *ShiftServiceImpl) Clear(ctx context.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.shiftRepo.DeleteAllByUser(ctx, userID)
}

func toResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:        s.ID,
		Date:      s.Date.Format("2006-01-02"),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Hours:     s.Hours,
		Notes:     s.Notes,
		Advance:   s.Advance,
		IsAdvance: s.IsAdvance,
	}
}
