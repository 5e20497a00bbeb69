package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-hojas/internal/application/auth"
	"github.com/jhoicas/inventario-hojas/internal/application/inventory"
	"github.com/jhoicas/inventario-hojas/internal/application/usecase"
	"github.com/jhoicas/inventario-hojas/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventario-hojas/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventario-hojas/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventario-hojas-test"
	testExpMin    = 60
)

func buildProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"subject": apphttp.GetSubject(c)})
		},
	)
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, pkgjwt.OperatorSubject, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	otherIssuer, _, err := pkgjwt.Generate(testJWTSecret, pkgjwt.OperatorSubject, "otro", testExpMin)
	require.NoError(t, err)
	otherSecret, _, err := pkgjwt.Generate("otro-secreto", pkgjwt.OperatorSubject, testIssuer, testExpMin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{"bearer válido", "Bearer " + validToken(t), "", http.StatusOK},
		{"token por query para websockets", "", validToken(t), http.StatusOK},
		{"sin token", "", "", http.StatusUnauthorized},
		{"formato inválido", "Token abc", "", http.StatusUnauthorized},
		{"firma de otro secreto", "Bearer " + otherSecret, "", http.StatusUnauthorized},
		{"issuer distinto", "Bearer " + otherIssuer, "", http.StatusUnauthorized},
		{"basura", "Bearer abc.def.ghi", "", http.StatusUnauthorized},
	}

	app := buildProtectedApp()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := "/protected"
			if tc.query != "" {
				target += "?access_token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			if tc.status == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, pkgjwt.OperatorSubject, body["subject"])
			}
		})
	}
}

func TestRouter_ConAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-operador"), bcrypt.MinCost)
	require.NoError(t, err)

	wb, err := inventory.NewWorkbook(memory.NewStateStore())
	require.NoError(t, err)
	require.NoError(t, wb.Load(context.Background(), true))
	advisory := usecase.NewAdvisoryUseCase(wb, stubLLM{}, usecase.AdvisoryConfig{Timeout: time.Second, Logger: zerolog.Nop()})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Executor:   wb,
		QueryUC:    usecase.NewQueryUseCase(wb),
		ReportUC:   usecase.NewReportUseCase(wb, advisory, stubPDF{}, stubExporter{}, "Inventario"),
		AdvisoryUC: advisory,
		AuthUC: auth.NewAuthUseCase(auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer, PasswordHash: string(hash),
		}),
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
		Logger:    zerolog.Nop(),
	})

	resp, _ := do(t, app, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/auth/token", `{"password":"incorrecta"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := do(t, app, http.MethodPost, "/api/auth/token", `{"password":"clave-operador"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/api/products", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
