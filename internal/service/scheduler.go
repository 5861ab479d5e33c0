package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// generateTimeout bounds one user's alert generation during a sweep.
const generateTimeout = 30 * time.Second

// Scheduler periodically refreshes alerts for every user with recent
// activity, so alerts stay current even for users who only read their
// dashboard without recording new transactions.
type Scheduler struct {
	alertService *AlertService
	transactions TransactionStore
	schedule     string
	cron         *cron.Cron
	logger       *zap.Logger
}

func NewScheduler(alertService *AlertService, transactions TransactionStore, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		alertService: alertService,
		transactions: transactions,
		schedule:     schedule,
		cron:         cron.New(),
		logger:       logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("alert refresh scheduler started", zap.String("schedule", s.schedule))
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweep() {
	ctx := context.Background()
	since := time.Now().AddDate(0, 0, -patternWindowDays)

	userIDs, err := s.transactions.UserIDsWithActivity(ctx, since)
	if err != nil {
		s.logger.Error("alert sweep failed to list active users", zap.Error(err))
		return
	}

	for _, userID := range userIDs {
		userCtx, cancel := context.WithTimeout(ctx, generateTimeout)
		s.alertService.GenerateAlerts(userCtx, userID)
		cancel()
	}

	s.logger.Info("alert sweep completed", zap.Int("users", len(userIDs)))
}
