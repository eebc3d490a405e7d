package app

import (
	"context"
	"time"

	pkgcron "github.com/drink365/estate-tax-app/internal/pkg/cron"
	"github.com/drink365/estate-tax-app/internal/session"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs. The sweep is pure
// hygiene: expired sessions are already rejected on read.
func registerCronJobs(sched *pkgcron.Scheduler, reg *session.Registry, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "sweep_sessions",
		Description: "清理過期的登入 session",
		Interval:    10 * time.Minute,
		Fn: func(ctx context.Context) error {
			removed, err := reg.SweepExpired()
			if err != nil {
				cronLogger.Warn("session 清理失敗", zap.Error(err))
				return err
			}
			if removed > 0 {
				cronLogger.Info("session 清理完成", zap.Int("removed", removed))
			}
			return nil
		},
	})
}
