package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pendente"
	ProjectStatusInProgress ProjectStatus = "andamento"
	ProjectStatusCompleted  ProjectStatus = "concluido"
)

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'pendente'" json:"status"`
	StartDate   time.Time     `gorm:"not null" json:"startDate"`
	UserID      uint64        `gorm:"not null;index" json:"userId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
