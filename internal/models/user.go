package models

// User represents a registered account that owns deliveries.
type User struct {
	BaseModel
	Name         string     `json:"name"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	PhotoURL     string     `json:"photo_url"`
	Deliveries   []Delivery `json:"deliveries,omitempty"`
}
