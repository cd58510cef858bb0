package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/otp"
	"blogpress-backend/pkg/logger"
)

type CleanupExpiredOTPsPayload struct {
	Date time.Time `json:"date,omitempty"`
}

// CleanupExpiredOTPsHandler xóa các OTP đã quá hạn
// Thay thế cho TTL index - chạy theo schedule từ worker
type CleanupExpiredOTPsHandler struct {
	otpRepo otp.Repository
}

func NewCleanupExpiredOTPsHandler(otpRepo otp.Repository) *CleanupExpiredOTPsHandler {
	return &CleanupExpiredOTPsHandler{
		otpRepo: otpRepo,
	}
}

func (h *CleanupExpiredOTPsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload CleanupExpiredOTPsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal fail due to ", err)
		return err
	}

	log.Info().Msg("Starting cleanup of expired OTPs")

	deleted, err := h.otpRepo.DeleteExpired(ctx)
	if err != nil {
		logger.Error("Delete expired otps failed due to ", err)
		return err
	}

	log.Info().
		Int64("otps_deleted", deleted).
		Msg("Successfully cleaned up expired OTPs")

	return nil
}
