package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog records who did what to an appointment, slot or schedule
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Detail    string     `gorm:"type:text;not null" json:"detail"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is free-form audit metadata stored as jsonb
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("audit metadata: unsupported column type %T", value)
	}

	decoded := JSON{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("audit metadata: %w", err)
	}
	*j = decoded
	return nil
}

// Audit actions
const (
	AuditActionScheduleUpdated          = "SCHEDULE_UPDATED"
	AuditActionSlotsGenerated           = "SLOTS_GENERATED"
	AuditActionAppointmentCreated       = "APPOINTMENT_CREATED"
	AuditActionAppointmentStatusUpdated = "APPOINTMENT_STATUS_UPDATED"
	AuditActionAppointmentCanceled      = "APPOINTMENT_CANCELED"
	AuditActionAppointmentDeleted       = "APPOINTMENT_DELETED"
)
