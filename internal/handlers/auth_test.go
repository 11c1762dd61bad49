package handlers_test

import (
	"database/sql/driver"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/entregas/internal/utils"
)

// bcryptHashOf matches an insert argument that is a bcrypt hash of the
// given plaintext, and never the plaintext itself.
type bcryptHashOf struct {
	plain string
}

func (m bcryptHashOf) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || s == m.plain {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s), []byte(m.plain)) == nil
}

func TestRegister_Success(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "João Silva", "joao@example.com",
			"11999990000", bcryptHashOf{plain: "segredo123"}, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"name":     "João Silva",
		"email":    "joao@example.com",
		"phone":    "11999990000",
		"password": "segredo123",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "Usuário cadastrado com sucesso!", body["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "joao@example.com"))

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"name":     "João Silva",
		"email":    "joao@example.com",
		"phone":    "11999990000",
		"password": "segredo123",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "E-mail já cadastrado!", body["message"])
	// No insert may happen when the email is taken.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_MissingFields(t *testing.T) {
	app, mock := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"name":  "João Silva",
		"email": "joao@example.com",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "Todos os campos são obrigatórios!", body["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_Success(t *testing.T) {
	app, mock := newTestApp(t)

	hash, err := utils.HashPassword("segredo123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(42, "joao@example.com", hash))

	resp := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "joao@example.com",
		"password": "segredo123",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "Login bem-sucedido!", body["message"])
	assert.Equal(t, float64(42), body["user_id"])
}

func TestLogin_WrongPassword(t *testing.T) {
	app, mock := newTestApp(t)

	hash, err := utils.HashPassword("segredo123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(42, "joao@example.com", hash))

	resp := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "joao@example.com",
		"password": "errada",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "Credenciais inválidas", body["message"])
	assert.NotContains(t, body, "user_id")
}

func TestLogin_UnknownEmail(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "ninguem@example.com",
		"password": "tanto-faz",
	})

	// Unknown email and wrong password must be indistinguishable.
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "Credenciais inválidas", body["message"])
}
