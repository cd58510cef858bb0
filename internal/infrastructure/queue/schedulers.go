package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"blogpress-backend/internal/domains/otp/job"
	"blogpress-backend/internal/shared"
	"blogpress-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddress,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupExpiredOTPsJob()
}

// ================================================
// JOB: Cleanup Expired OTPs (Every 10 minutes)
// ================================================
// Một OTP hết hạn đã không thể redeem được nữa (queries đều check
// expires_at > NOW()), job này chỉ dọn rows để bảng không phình ra
func (s *Scheduler) registerCleanupExpiredOTPsJob() error {
	payload, err := json.Marshal(job.CleanupExpiredOTPsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupExpiredOTPs, payload)

	_, err = s.scheduler.Register(
		"*/10 * * * *", // Every 10 minutes
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register CleanupExpiredOTPs job", err)
		return err
	}

	logger.Info("✓ Registered CleanupExpiredOTPs: every 10 minutes", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
