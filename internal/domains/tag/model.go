package tag

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status là trạng thái moderation của tag
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Tag là domain entity - ánh xạ 1:1 với bảng tags trong DB
// Name luôn được lưu ở dạng normalized (trim + lowercase)
type Tag struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Status    Status    `db:"status" json:"status"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NormalizeName là deduplication key: trim + lowercase
// "GoLang ", "golang", " GOLANG" đều resolve về cùng một tag
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
