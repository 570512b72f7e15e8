package entities

import "time"

const DateLayout = "2006-01-02"

// Rental books one piece of equipment for an inclusive date range.
// Dates are kept as YYYY-MM-DD strings.
type Rental struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EquipmentID uint      `gorm:"index;not null" json:"equipment_id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	StartDate   string    `gorm:"not null" json:"start_date"`
	EndDate     string    `gorm:"not null" json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`

	Equipment *Equipment `gorm:"foreignKey:EquipmentID;constraint:OnDelete:RESTRICT" json:"-"`
	Renter    *User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Rental) TableName() string { return "rentals" }

type RentalView struct {
	Rental
	EquipmentName string `json:"equipment_name"`
	RenterName    string `json:"renter_name"`
}
