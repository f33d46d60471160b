package reports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/entity/category"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/logger"
)

type Statistics struct {
	Period  Period          `json:"period"`
	Records []CategoryTotal `json:"records"`
	Total   float64         `json:"total"`
}

type reportCache interface {
	GetReport(email, window string) (string, error)
	CacheReport(email, window, report string, ttl time.Duration) error
}

type config interface {
	CacheTTL() time.Duration
}

type Generator struct {
	cache reportCache
	ttl   time.Duration
}

// NewGenerator builds a generator; cache may be nil.
func NewGenerator(config config, cache reportCache) *Generator {
	return &Generator{
		cache: cache,
		ttl:   config.CacheTTL(),
	}
}

// Statistics aggregates rec's expenses of period by category.
func (g *Generator) Statistics(ctx context.Context, rec user.Record, period Period, ref time.Time) (Statistics, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "statistics")
	defer span.Finish()
	span.SetTag("period", string(period))

	logger.Debug("Statistics - start", zap.String("email", rec.Email), zap.String("period", string(period)))
	defer logger.Debug("Statistics - end")

	window := WindowKey(period, ref)
	if stats, ok := g.fromCache(rec.Email, window); ok {
		span.SetTag("cached", true)
		return stats, nil
	}

	stats := Build(rec.Expenses, period, ref)
	g.toCache(rec.Email, window, stats)
	return stats, nil
}

// Build is the uncached form of Statistics.
func Build(exps []user.ExpenseRecord, period Period, ref time.Time) Statistics {
	records := TotalsByCategory(FilterByPeriod(exps, period, ref), category.All)
	total := 0.0
	for _, rec := range records {
		total += rec.Amount
	}
	return Statistics{
		Period:  period,
		Records: records,
		Total:   total,
	}
}

func (g *Generator) fromCache(email, window string) (Statistics, bool) {
	if g.cache == nil {
		return Statistics{}, false
	}
	raw, err := g.cache.GetReport(email, window)
	if err != nil {
		return Statistics{}, false
	}

	var stats Statistics
	if err = json.Unmarshal([]byte(raw), &stats); err != nil {
		logger.Warn("dropping malformed cached report", zap.Error(err))
		return Statistics{}, false
	}
	return stats, true
}

func (g *Generator) toCache(email, window string, stats Statistics) {
	if g.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		logger.Error("cannot encode report", zap.Error(errors.Wrap(err, "cache report")))
		return
	}
	if err = g.cache.CacheReport(email, window, string(raw), g.ttl); err != nil {
		logger.Warn("cannot cache report", zap.Error(err))
	}
}
