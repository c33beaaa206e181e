package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BaseSpaceModel struct {
	BaseModel
	SpaceID string `gorm:"type:varchar(36);index"`
}

func (b BaseSpaceModel) Validate() error {
	if b.SpaceID == "" {
		return errors.New("не указан спейс")
	}
	return nil
}
