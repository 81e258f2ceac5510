package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/repository"
	"github.com/somnolab/sleep-science/pkg/pagination"
)

// SleepHistoryService handles ingestion and listing of raw sleep history.
type SleepHistoryService interface {
	Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertSleepHistoryRequest) (*domain.SleepHistoryEntry, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepHistoryFilter) (*domain.SleepHistoryListResponse, error)
}

type sleepHistoryService struct {
	repo     repository.SleepHistoryRepository
	userRepo repository.UserRepository
}

func NewSleepHistoryService(repo repository.SleepHistoryRepository, userRepo repository.UserRepository) SleepHistoryService {
	return &sleepHistoryService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Upsert stores one day of sleep data, replacing any existing entry for the
// same (user, date).
func (s *sleepHistoryService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertSleepHistoryRequest) (*domain.SleepHistoryEntry, error) {
	// Load user to confirm existence and get their home timezone
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	localTZ := user.Timezone
	if req.LocalTimezone != nil && *req.LocalTimezone != "" {
		localTZ = *req.LocalTimezone
	}
	if localTZ == "" {
		localTZ = "UTC"
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	if req.Bedtime != nil && req.WakeTime != nil && !req.WakeTime.After(*req.Bedtime) {
		return nil, domain.ErrInvalidInput
	}

	entry := &domain.SleepHistoryEntry{
		UserID:            userID,
		Date:              date,
		Bedtime:           normalizeUTC(req.Bedtime),
		WakeTime:          normalizeUTC(req.WakeTime),
		DeepSleepMinutes:  req.DeepSleepMinutes,
		LightSleepMinutes: req.LightSleepMinutes,
		RemSleepMinutes:   req.RemSleepMinutes,
		AwakeMinutes:      req.AwakeMinutes,
		DurationInSeconds: req.DurationInSeconds,
		SleepScore:        req.SleepScore,
		LocalTimezone:     localTZ,
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *sleepHistoryService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepHistoryFilter) (*domain.SleepHistoryListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	entries, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(entries) > limit

	if hasMore {
		entries = entries[:limit]
	}

	response := &domain.SleepHistoryListResponse{
		Data: make([]domain.SleepHistoryResponse, len(entries)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i, entry := range entries {
		response.Data[i] = entry.ToResponse()
	}

	if hasMore && len(entries) > 0 {
		last := entries[len(entries)-1]
		cursor := &pagination.Cursor{
			ID:   last.ID,
			Date: last.Date,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

func normalizeUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
