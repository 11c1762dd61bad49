package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/entregas/internal/models"
)

// DeliveryHandler manages delivery endpoints.
type DeliveryHandler struct {
	db *gorm.DB
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(db *gorm.DB) *DeliveryHandler {
	return &DeliveryHandler{db: db}
}

type createDeliveryRequest struct {
	Receiver     string `json:"receiver"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	UserID       uint   `json:"user_id"`
}

func (r *createDeliveryRequest) complete() bool {
	return r.Receiver != "" && r.CEP != "" && r.Street != "" && r.Number != "" &&
		r.Neighborhood != "" && r.City != "" && r.State != "" &&
		r.Description != "" && r.Status != "" && r.UserID != 0
}

// CreateDelivery persists a new delivery for an existing user. The
// owning user is fixed at creation and never changes.
func (h *DeliveryHandler) CreateDelivery(c *fiber.Ctx) error {
	var req createDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	if !req.complete() {
		return fiber.NewError(fiber.StatusBadRequest, "Todos os campos obrigatórios devem ser preenchidos.")
	}

	var owner models.User
	if err := h.db.First(&owner, "id = ?", req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Usuário não encontrado")
		}
		return err
	}

	delivery := models.Delivery{
		Receiver:     req.Receiver,
		CEP:          req.CEP,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		Description:  req.Description,
		Status:       req.Status,
		UserID:       req.UserID,
	}

	if err := h.db.Create(&delivery).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Entrega cadastrada com sucesso!",
	})
}

// ListByUser returns every delivery owned by a user in insertion order.
func (h *DeliveryHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
	}

	var deliveries []models.Delivery
	if err := h.db.Where("user_id = ?", userID).Order("id").Find(&deliveries).Error; err != nil {
		return err
	}

	result := make([]fiber.Map, 0, len(deliveries))
	for i := range deliveries {
		result = append(result, deliveryResponse(&deliveries[i]))
	}

	return c.JSON(result)
}

// GetDelivery returns a single delivery by ID.
func (h *DeliveryHandler) GetDelivery(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
	}

	var delivery models.Delivery
	if err := h.db.First(&delivery, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Entrega não encontrada")
		}
		return err
	}

	return c.JSON(deliveryResponse(&delivery))
}

// GetDeliveryDetails returns a delivery with a reduced projection of its
// owner embedded. A missing owner row is reported as 404 rather than a
// server error.
func (h *DeliveryHandler) GetDeliveryDetails(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
	}

	var delivery models.Delivery
	if err := h.db.First(&delivery, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Entrega não encontrada")
		}
		return err
	}

	var owner models.User
	if err := h.db.First(&owner, "id = ?", delivery.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}
		return err
	}

	resp := deliveryResponse(&delivery)
	resp["user"] = fiber.Map{
		"id":    owner.ID,
		"name":  owner.Name,
		"email": owner.Email,
	}

	return c.JSON(resp)
}

type confirmDeliveryRequest struct {
	ReceivedBy  string `json:"received_by"`
	CPFReceiver string `json:"cpf_receiver"`
	Relation    string `json:"relation"`
	PhotoURL    string `json:"photo_url"`
}

// ConfirmDelivery records who received the package and forces the status
// to its terminal value. Re-confirmation silently overwrites.
func (h *DeliveryHandler) ConfirmDelivery(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
	}

	var delivery models.Delivery
	if err := h.db.First(&delivery, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Entrega não encontrada")
		}
		return err
	}

	var req confirmDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	if req.ReceivedBy == "" || req.CPFReceiver == "" || req.Relation == "" || req.PhotoURL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Todos os campos obrigatórios devem ser preenchidos.")
	}

	updates := map[string]interface{}{
		"received_by":  req.ReceivedBy,
		"cpf_receiver": req.CPFReceiver,
		"relation":     req.Relation,
		"photo_url":    req.PhotoURL,
		"status":       models.StatusCompleted,
		"updated_at":   time.Now(),
	}

	if err := h.db.Model(&models.Delivery{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Entrega confirmada com sucesso!"})
}

func deliveryResponse(d *models.Delivery) fiber.Map {
	return fiber.Map{
		"id":            d.ID,
		"tracking_code": d.TrackingCode,
		"receiver":      d.Receiver,
		"cep":           d.CEP,
		"street":        d.Street,
		"number":        d.Number,
		"complement":    d.Complement,
		"neighborhood":  d.Neighborhood,
		"city":          d.City,
		"state":         d.State,
		"description":   d.Description,
		"status":        d.Status,
		"received_by":   d.ReceivedBy,
		"cpf_receiver":  d.CPFReceiver,
		"relation":      d.Relation,
		"photo_url":     d.PhotoURL,
	}
}
