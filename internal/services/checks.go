package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	interf "github.com/glkeru/plagadmin/internal/interfaces"
	model "github.com/glkeru/plagadmin/internal/models"
	"go.uber.org/zap"
)

// Журнал проверок и сводка дашборда
// Записи приходят из пайплайна проверок через Kafka
type CheckFeed struct {
	entries []model.CheckEntry
	users   *UserLedger
	cache   interf.SummaryCache
	logger  *zap.Logger
	mu      sync.Mutex
}

func NewCheckFeed(seed []model.CheckEntry, users *UserLedger, cache interf.SummaryCache, logger *zap.Logger) *CheckFeed {
	return &CheckFeed{entries: seed, users: users, cache: cache, logger: logger}
}

// Фильтр по статусу, пустой или "all" - все записи
func (f *CheckFeed) Filter(status string) []model.CheckEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	if status == "" || status == "all" {
		return append([]model.CheckEntry(nil), f.entries...)
	}
	found := []model.CheckEntry{}
	for _, e := range f.entries {
		if string(e.Status) == status {
			found = append(found, e)
		}
	}
	return found
}

func (f *CheckFeed) Counts() model.CheckCounts {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := model.CheckCounts{Total: len(f.entries)}
	for _, e := range f.entries {
		switch e.Status {
		case model.CheckCompleted:
			counts.Completed++
		case model.CheckProcessing:
			counts.Processing++
		case model.CheckError:
			counts.Errors++
		}
	}
	return counts
}

// Новая запись добавляется в начало, кэш сводки инвалидируется
func (f *CheckFeed) Append(ctx context.Context, entry model.CheckEntry) {
	f.mu.Lock()
	f.entries = append([]model.CheckEntry{entry}, f.entries...)
	f.mu.Unlock()

	if f.cache != nil {
		err := f.cache.InvalidateSummary(ctx)
		if err != nil {
			f.logger.Error(err.Error())
		}
	}
}

// Сводка за день: выручка, проверки, новые пользователи, очередь
func (f *CheckFeed) Summary(ctx context.Context, now time.Time) (model.DashboardSummary, error) {
	// cache
	if f.cache != nil {
		summary, err := f.cache.GetSummary(ctx)
		if err == nil {
			return summary, nil
		}
	}

	f.mu.Lock()
	summary := model.DashboardSummary{}
	y, m, d := now.Date()
	for _, e := range f.entries {
		if e.Status == model.CheckProcessing {
			summary.QueueLength++
		}
		ey, em, ed := e.Timestamp.Date()
		if ey != y || em != m || ed != d {
			continue
		}
		if e.Status == model.CheckCompleted {
			summary.ChecksToday++
			summary.RevenueToday += e.Cost
		}
	}
	f.mu.Unlock()

	if f.users != nil {
		summary.NewUsersToday = f.users.JoinedOn(now)
	}

	if f.cache != nil {
		_ = f.cache.SetSummary(ctx, summary)
	}
	return summary, nil
}

// Событие пайплайна проверок
func ParseCheckEvent(eventJson string) (model.CheckEntry, error) {
	entry := model.CheckEntry{}
	err := json.Unmarshal([]byte(eventJson), &entry)
	if err != nil {
		return model.CheckEntry{}, err
	}
	if entry.ID == "" {
		return model.CheckEntry{}, fmt.Errorf("invalid check event: id field is required")
	}
	if entry.UserID == "" {
		return model.CheckEntry{}, fmt.Errorf("invalid check event: user_id field is required")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return entry, nil
}
