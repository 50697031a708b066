package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category and Label are read-mostly reference data, seeded once at startup.

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:50;not null" json:"name"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

const (
	LabelTypeDiet   = "diet"
	LabelTypeHealth = "health"
)

type Label struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Type        string    `gorm:"size:10;not null" json:"type"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
}

func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
