package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/entregas/internal/models"
)

// UserHandler manages user profile endpoints.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUser returns profile fields for a user, never the password hash.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"photo_url": user.PhotoURL,
	})
}

// Pointer fields distinguish an omitted field from an explicitly
// provided empty value.
type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	PhotoURL *string `json:"photo_url"`
}

// UpdateUser performs a partial profile update: only fields present in
// the payload are overwritten.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}
		return err
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := h.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"message": "Usuário atualizado com sucesso!"})
}
