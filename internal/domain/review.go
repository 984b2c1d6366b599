package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	VehicleID int64     `json:"vehicle_id"`
	RenterID  int64     `json:"renter_id"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	ImageURLs []string  `json:"image_urls,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`

	Renter *User `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
}
