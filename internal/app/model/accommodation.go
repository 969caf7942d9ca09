package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AccommodationKind string

const (
	KindEcoLodge AccommodationKind = "eco_lodge"
	KindHotel    AccommodationKind = "hotel"
	KindCamping  AccommodationKind = "camping"
	KindFinca    AccommodationKind = "finca"
	KindHostal   AccommodationKind = "hostal"
)

type Accommodation struct {
	ID            uint              `gorm:"primarykey" json:"id"`
	DestinationID uint              `gorm:"not null;index" json:"destination_id"`
	Name          string            `gorm:"not null" json:"name"`
	Description   string            `gorm:"type:text" json:"description"`
	Kind          AccommodationKind `gorm:"type:varchar(30);index" json:"kind"`            // tipo de alojamiento
	PricePerNight float64           `gorm:"not null" json:"price_per_night"`               // precio por noche
	Currency      string            `gorm:"type:varchar(3);default:'COP'" json:"currency"`
	Rating        float64           `gorm:"default:0" json:"rating"`
	Amenities     pq.StringArray    `gorm:"type:text[]" json:"amenities"`                  // servicios incluidos
	Contact       datatypes.JSON    `json:"contact"`                                       // teléfono, correo, sitio web
	ImageURL      string            `json:"image_url"`
	ProviderName  string            `json:"provider_name"`
	BusinessName  string            `json:"business_name"`
	Available     bool              `gorm:"default:true" json:"available"`
	NextAvailable *time.Time        `json:"next_available,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}

func (Accommodation) TableName() string {
	return "accommodations"
}
