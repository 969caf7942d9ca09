package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Guide struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	DestinationID   uint           `gorm:"not null;index" json:"destination_id"`
	Name            string         `gorm:"not null" json:"name"`
	Bio             string         `gorm:"type:text" json:"bio"`                 // reseña profesional
	Languages       pq.StringArray `gorm:"type:text[]" json:"languages"`         // idiomas
	YearsExperience int            `json:"years_experience"`
	Rating          float64        `gorm:"default:0" json:"rating"`
	PhotoURL        string         `json:"photo_url"`
	Certified       bool           `gorm:"default:false" json:"certified"`       // certificado RNT
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}

func (Guide) TableName() string {
	return "guides"
}
