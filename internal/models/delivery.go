package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delivery status values exposed to clients.
const (
	StatusPending   = "Pendente"
	StatusCompleted = "Concluído"
)

// Delivery is a tracked package owned by exactly one user.
type Delivery struct {
	BaseModel
	TrackingCode uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"tracking_code"`
	Receiver     string    `json:"receiver"`
	CEP          string    `json:"cep"`
	Street       string    `json:"street"`
	Number       string    `json:"number"`
	Complement   string    `json:"complement"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Description  string    `json:"description"`
	Status       string    `gorm:"default:Pendente" json:"status"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	User         *User     `json:"user,omitempty"`

	// Populated by confirmation only.
	ReceivedBy  string `json:"received_by"`
	CPFReceiver string `json:"cpf_receiver"`
	Relation    string `json:"relation"`
	PhotoURL    string `json:"photo_url"`
}

// BeforeCreate assigns a tracking code to new deliveries.
func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.TrackingCode == uuid.Nil {
		d.TrackingCode = uuid.New()
	}
	return nil
}
