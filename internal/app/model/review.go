package model

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `gorm:"not null;uniqueIndex:idx_reviews_user_destination" json:"user_id"`
	DestinationID uint           `gorm:"not null;uniqueIndex:idx_reviews_user_destination" json:"destination_id"`
	Rating        int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"` // calificación 1-5
	Comment       string         `gorm:"type:text" json:"comment"`
	VisitedAt     *time.Time     `json:"visited_at,omitempty"` // fecha de la visita
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
