package shared

// Asynq task type names
const (
	TypeSendVerificationEmail = "email:verification"
	TypeSendResetEmail        = "email:reset_password"
	TypeCleanupExpiredOTPs    = "otp:cleanup_expired"
)

// Asynq queue names
const (
	QueueEmail       = "email"
	QueueMaintenance = "maintenance"
	QueueDefault     = "default"
)
