package entity

import "time"

// Patient represents a patient record owned by a user.
// user_id is assigned from the authenticated caller on create and is
// never rewritten by the update operation.
type Patient struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Age       int       `gorm:"not null" json:"age"`
	Gender    string    `gorm:"type:varchar(50);not null" json:"gender"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	PhoneNo   string    `gorm:"column:phone_no;type:varchar(50);not null" json:"phone_no"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
