package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type DestinationRegion string // región natural de Colombia

const (
	RegionAmazonia  DestinationRegion = "amazonia"
	RegionAndina    DestinationRegion = "andina"
	RegionCaribe    DestinationRegion = "caribe"
	RegionOrinoquia DestinationRegion = "orinoquia"
	RegionPacifica  DestinationRegion = "pacifica"
	RegionInsular   DestinationRegion = "insular"
)

type Destination struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	Name        string            `gorm:"not null;index" json:"name"`               // nombre del destino
	Description string            `gorm:"type:text" json:"description"`             // descripción
	City        string            `gorm:"not null" json:"city"`                     // municipio
	Department  string            `gorm:"not null;index" json:"department"`         // departamento
	Region      DestinationRegion `gorm:"type:varchar(30);index" json:"region"`     // región natural
	Climate     string            `json:"climate"`                                  // clima predominante
	BestSeason  string            `json:"best_season"`                              // mejor época para visitar
	Highlights  pq.StringArray    `gorm:"type:text[]" json:"highlights"`            // atractivos principales
	ImageURL    string            `json:"image_url"`
	Rating      float64           `gorm:"default:0" json:"rating"`                  // calificación promedio
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Associations (loaded with Preload)
	Activities     []Activity      `gorm:"foreignKey:DestinationID" json:"activities,omitempty"`
	Accommodations []Accommodation `gorm:"foreignKey:DestinationID" json:"accommodations,omitempty"`
	Guides         []Guide         `gorm:"foreignKey:DestinationID" json:"guides,omitempty"`
	Packages       []TourPackage   `gorm:"foreignKey:DestinationID" json:"packages,omitempty"`
	Reviews        []Review        `gorm:"foreignKey:DestinationID" json:"reviews,omitempty"`
}

func (Destination) TableName() string {
	return "destinations"
}
