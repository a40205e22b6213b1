package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only record of every mutation the engine performs.
type AuditLog struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	Action     string         `gorm:"size:50;not null" json:"action"`
	EntityType string         `gorm:"size:50;not null" json:"entity_type"`
	EntityID   string         `gorm:"type:uuid;not null;index" json:"entity_id"`
	ActorType  string         `gorm:"size:50;not null" json:"actor_type"`
	ActorID    string         `gorm:"size:100;not null" json:"actor_id"`
	Changes    datatypes.JSON `gorm:"type:jsonb" json:"changes"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
