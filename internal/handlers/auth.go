package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/entregas/internal/models"
	"github.com/example/entregas/internal/utils"
)

// AuthHandler bundles dependencies for registration and login.
type AuthHandler struct {
	db *gorm.DB
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	PhotoURL string `json:"photo_url"`
}

// Register creates a new user account. The password is stored only as a
// bcrypt hash.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Todos os campos são obrigatórios!")
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "E-mail já cadastrado!")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao processar a senha")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		PhotoURL:     req.PhotoURL,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Usuário cadastrado com sucesso!",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns the user identifier. Unknown
// email and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Credenciais inválidas")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "Credenciais inválidas")
	}

	return c.JSON(fiber.Map{
		"message": "Login bem-sucedido!",
		"user_id": user.ID,
	})
}
