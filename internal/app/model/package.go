package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// TourPackage bundles activities and lodging for a destination into a
// fixed-price multi-day plan.
type TourPackage struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	DestinationID uint           `gorm:"not null;index" json:"destination_id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Days          int            `gorm:"not null" json:"days"`                          // duración en días
	Price         float64        `gorm:"not null" json:"price"`                         // precio total por persona
	Currency      string         `gorm:"type:varchar(3);default:'COP'" json:"currency"`
	Includes      pq.StringArray `gorm:"type:text[]" json:"includes"`                   // qué incluye
	Rating        float64        `gorm:"default:0" json:"rating"`
	ImageURL      string         `json:"image_url"`
	ProviderName  string         `json:"provider_name"`
	BusinessName  string         `json:"business_name"`
	Available     bool           `gorm:"default:true" json:"available"`
	NextAvailable *time.Time     `json:"next_available,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}

func (TourPackage) TableName() string {
	return "tour_packages"
}
