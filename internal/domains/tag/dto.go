package tag

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// TagDTO là tag representation trả về cho client
type TagDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Tag) ToDTO() TagDTO {
	return TagDTO{
		ID:        t.ID,
		Name:      t.Name,
		Status:    t.Status,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FindOrCreateResponse gồm tag và cờ cho biết tag vừa được tạo
// hay đã tồn tại trước đó (idempotent reuse)
type FindOrCreateResponse struct {
	Tag            TagDTO `json:"tag"`
	IsNewlyCreated bool   `json:"isNewlyCreated"`
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("tag name is required"),
			validation.Length(1, 50).Error("tag name must be 1-50 characters"),
		),
	)
}
