package dashboard

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pantry-backend/internal/inventory"
	"pantry-backend/internal/platform/ident"
	"pantry-backend/internal/platform/logging"
)

type Stats struct {
	TotalItems         int       `json:"total_items"`
	LowStockItems      int       `json:"low_stock_items"`
	PendingTasks       int       `json:"pending_tasks"`
	PendingSuggestions int       `json:"pending_suggestions"`
	Failed             []string  `json:"failed,omitempty"` // 取得に失敗して 0 を返したカウンタ
	GeneratedAt        time.Time `json:"generated_at"`
}

type Service struct {
	store  CountStore
	clock  ident.Clock
	logger *zap.Logger
}

func NewService(conn *sql.DB, logger *zap.Logger) *Service {
	return NewServiceWithStore(NewStore(conn), logger)
}

func NewServiceWithStore(store CountStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, clock: ident.RealClock{}, logger: logger.Named("dashboard")}
}

// Stats は4つの件数を並行に取る。失敗したものはログに残して 0 のまま返す。
func (s *Service) Stats(ctx context.Context) Stats {
	var (
		st     Stats
		mu     sync.Mutex
		failed []string
	)

	counters := []struct {
		name string
		dst  *int
		fn   func(context.Context) (int, error)
	}{
		{"total_items", &st.TotalItems, s.store.CountItems},
		{"low_stock_items", &st.LowStockItems, func(ctx context.Context) (int, error) {
			return s.store.CountLowStock(ctx, inventory.LowStockThreshold)
		}},
		{"pending_tasks", &st.PendingTasks, s.store.CountIncompleteTasks},
		{"pending_suggestions", &st.PendingSuggestions, s.store.CountPendingSuggestions},
	}

	// 1つ失敗しても他は止めないので、goroutine は常に nil を返す
	eg, egCtx := errgroup.WithContext(ctx)
	for _, c := range counters {
		eg.Go(func() error {
			n, err := c.fn(egCtx)
			if err != nil {
				s.log(ctx).Warn("dashboard count failed", zap.String("counter", c.name), zap.Error(err))
				mu.Lock()
				failed = append(failed, c.name)
				mu.Unlock()
				return nil
			}
			*c.dst = n
			return nil
		})
	}
	_ = eg.Wait()

	sort.Strings(failed)
	st.Failed = failed
	st.GeneratedAt = s.clock.Now()
	return st
}

func (s *Service) log(ctx context.Context) *zap.Logger { return logging.For(ctx, s.logger) }
