package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goexpense/internal/domain"
)

var reportModes = []domain.Mode{domain.ModePersonal, domain.ModeBusiness}

// ReportUseCase builds category and monthly summaries of one namespace.
type ReportUseCase struct {
	recordRepo RecordRepository
	cache      Cache
	ttl        time.Duration
	logger     zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase. A nil cache disables caching.
func NewReportUseCase(recordRepo RecordRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) *ReportUseCase {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &ReportUseCase{
		recordRepo: recordRepo,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
	}
}

// GetReport returns the report for the user's records in mode.
func (uc *ReportUseCase) GetReport(ctx context.Context, userID, mode string) (*domain.Report, error) {
	m, err := domain.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	// The generation is read before the records so a write that commits while
	// the report is built moves readers to a new key and the stale report is
	// never served.
	gen, cacheable := reportGeneration(ctx, uc.cache, uc.logger, userID)

	key := reportCacheKey(userID, m, gen)
	if cacheable {
		if cached := uc.fromCache(ctx, key); cached != nil {
			return cached, nil
		}
	}

	records, err := uc.recordRepo.ListByMode(ctx, userID, m)
	if err != nil {
		return nil, err
	}

	report := domain.BuildReport(m, records)
	if cacheable {
		uc.toCache(ctx, key, report)
	}

	return report, nil
}

func (uc *ReportUseCase) fromCache(ctx context.Context, key string) *domain.Report {
	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("report cache read failed")
		}
		return nil
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached report")
		return nil
	}

	return &report
}

func (uc *ReportUseCase) toCache(ctx context.Context, key string, report *domain.Report) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.ttl); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

func reportCacheKey(userID string, mode domain.Mode, gen string) string {
	return "report:" + userID + ":" + string(mode) + ":" + gen
}

func reportGenerationKey(userID string) string {
	return "report-gen:" + userID
}

// reportGeneration returns the user's current report generation. A user that
// never wrote has generation "0". The second result is false when there is no
// cache or it cannot be read, in which case reports bypass the cache.
func reportGeneration(ctx context.Context, cache Cache, logger zerolog.Logger, userID string) (string, bool) {
	if cache == nil {
		return "", false
	}

	data, err := cache.Get(ctx, reportGenerationKey(userID))
	switch {
	case errors.Is(err, ErrCacheMiss):
		return "0", true
	case err != nil:
		logger.Warn().Err(err).Str("user_id", userID).Msg("report generation read failed")
		return "", false
	}

	return string(data), true
}

// invalidateReports moves the user to a new report generation and drops the
// reports of the old one. Failures are logged only; the TTL bounds how long a
// stale report can live.
func invalidateReports(ctx context.Context, cache Cache, logger zerolog.Logger, userID string) {
	if cache == nil {
		return
	}

	old, known := reportGeneration(ctx, cache, logger, userID)

	next := strconv.FormatInt(time.Now().UnixNano(), 36)
	if next == old {
		next += "x"
	}
	if err := cache.Set(ctx, reportGenerationKey(userID), []byte(next), 0); err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("report cache invalidation failed")
		return
	}

	if !known {
		return
	}

	keys := make([]string, 0, len(reportModes))
	for _, m := range reportModes {
		keys = append(keys, reportCacheKey(userID, m, old))
	}

	if err := cache.Delete(ctx, keys...); err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("stale report cleanup failed")
	}
}
