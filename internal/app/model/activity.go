package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ActivityCategory string

const (
	CategoryBirdwatching  ActivityCategory = "avistamiento_aves"
	CategoryHiking        ActivityCategory = "senderismo"
	CategoryRafting       ActivityCategory = "rafting"
	CategoryDiving        ActivityCategory = "buceo"
	CategoryWhaleWatching ActivityCategory = "avistamiento_ballenas"
	CategoryCulture       ActivityCategory = "cultura"
	CategoryGastronomy    ActivityCategory = "gastronomia"
)

type ActivityDifficulty string

const (
	DifficultyEasy     ActivityDifficulty = "facil"
	DifficultyModerate ActivityDifficulty = "moderada"
	DifficultyHard     ActivityDifficulty = "exigente"
)

type Activity struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	DestinationID uint               `gorm:"not null;index" json:"destination_id"`
	Name          string             `gorm:"not null" json:"name"`                        // nombre de la actividad
	Description   string             `gorm:"type:text" json:"description"`
	Category      ActivityCategory   `gorm:"type:varchar(40);index" json:"category"`      // categoría
	Difficulty    ActivityDifficulty `gorm:"type:varchar(20)" json:"difficulty"`          // dificultad
	DurationHours float64            `json:"duration_hours"`                              // duración (horas)
	Price         float64            `gorm:"not null" json:"price"`                       // precio por persona
	Currency      string             `gorm:"type:varchar(3);default:'COP'" json:"currency"`
	PriceUnit     string             `gorm:"default:'persona'" json:"price_unit"`         // unidad de cobro
	Rating        float64            `gorm:"default:0" json:"rating"`
	Tags          pq.StringArray     `gorm:"type:text[]" json:"tags"`                     // etiquetas de búsqueda
	ImageURL      string             `json:"image_url"`
	ProviderName  string             `json:"provider_name"`                               // operador
	BusinessName  string             `json:"business_name"`                               // razón social
	Available     bool               `gorm:"default:true" json:"available"`               // disponible hoy
	NextAvailable *time.Time         `json:"next_available,omitempty"`                    // próxima fecha disponible
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}
