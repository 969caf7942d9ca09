package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // rol del usuario

const (
	RoleUser     UserRole = "user"     // viajero
	RoleProvider UserRole = "provider" // operador turístico
	RoleAdmin    UserRole = "admin"    // administrador
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                        // ID del usuario
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`           // correo electrónico
	PasswordHash string         `gorm:"not null" json:"-"`                           // hash de la contraseña
	Name         string         `gorm:"not null" json:"name"`                        // nombre completo
	Phone        string         `json:"phone"`                                       // teléfono (solo dígitos)
	ProfileImage string         `json:"profile_image"`                               // URL de la foto de perfil
	Country      string         `json:"country"`                                     // país de origen
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"` // rol
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Reviews []Review `gorm:"foreignKey:UserID" json:"reviews,omitempty"` // reseñas escritas
}

func (User) TableName() string {
	return "users"
}
