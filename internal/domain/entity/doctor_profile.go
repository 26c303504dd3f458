package entity

import "github.com/google/uuid"

// DoctorProfile is owned by the identity service; scheduling only reads it
// to resolve whether a doctor exists.
type DoctorProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`

	// Relationships
	User         User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availability []WeeklyAvailability `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsActive checks the owning user account is active
func (d *DoctorProfile) IsActive() bool {
	return d.User.IsActive == nil || *d.User.IsActive
}
