package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/config"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/services/requests"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/utils"
)

const testSecret = "segredo-de-teste"

type testEnv struct {
	app    *fiber.App
	stores store.Stores
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))

	st := store.New(db)
	svc := requests.NewRequestService(st.Requests, st.Proposals, st.Profiles, nil)

	app := fiber.New()
	Register(app, Deps{
		Config: config.Config{
			JWTSecret:      testSecret,
			JWTExpiresMin:  60,
			RequestTimeout: 5 * time.Second,
		},
		Stores:  st,
		Service: svc,
	})
	return &testEnv{app: app, stores: st}
}

func (e *testEnv) user(t *testing.T, name, email string, typ models.UserType) *models.UserProfile {
	t.Helper()
	hash, err := utils.HashPassword("senha123")
	require.NoError(t, err)
	u := &models.UserProfile{Name: name, Email: email, PasswordHash: hash, UserType: typ}
	require.NoError(t, e.stores.Profiles.Create(context.Background(), u))
	return u
}

type call struct {
	method string
	path   string
	body   any
	as     *models.UserProfile
}

func (e *testEnv) do(t *testing.T, c call) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.as != nil {
		tok, err := utils.SignJWT(testSecret, c.as.ID.String(), string(c.as.UserType), 10)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookie, Value: tok})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", body["data"])
	return d
}

func publishBody(title, budget string) map[string]string {
	return publishBodyIn("Pintura", title, budget)
}

func publishBodyIn(category, title, budget string) map[string]string {
	return map[string]string{
		"title":         title,
		"description":   "Preciso de um profissional caprichoso para o serviço",
		"category":      category,
		"budget":        budget,
		"location":      "São Paulo, SP",
		"delivery_type": "presencial",
	}
}

func (e *testEnv) publish(t *testing.T, as *models.UserProfile, title, budget string) string {
	t.Helper()
	return e.publishIn(t, as, "Pintura", title, budget)
}

func (e *testEnv) publishIn(t *testing.T, as *models.UserProfile, category, title, budget string) string {
	t.Helper()
	resp, body := e.do(t, call{method: http.MethodPost, path: "/api/publicar-servico", body: publishBodyIn(category, title, budget), as: as})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	return data(t, body)["id"].(string)
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == utils.SessionCookie {
			return ck
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	e := newTestEnv(t)
	form := map[string]string{
		"name": "Ana", "email": "Ana@Example.com", "password": "senha123", "user_type": "client",
	}

	resp, body := e.do(t, call{method: http.MethodPost, path: "/api/cadastro", body: form})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, "/dashboard", body["redirect"])
	assert.NotNil(t, sessionCookie(resp))

	resp, body = e.do(t, call{method: http.MethodPost, path: "/api/cadastro", body: form})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
}

func TestRegister_Validation(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, call{method: http.MethodPost, path: "/api/cadastro", body: map[string]string{
		"name": "", "email": "nope", "password": "123", "user_type": "admin",
	}})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	errs := body["errors"].(map[string]any)
	for _, f := range []string{"name", "email", "password", "user_type"} {
		assert.Contains(t, errs, f)
	}
}

func TestLogin_RedirectsToIntent(t *testing.T) {
	e := newTestEnv(t)
	e.user(t, "Ana", "ana@example.com", models.UserTypeClient)

	tests := []struct {
		next string
		want string
	}{
		{"/servicos/abc", "/servicos/abc"},
		{"", "/dashboard"},
		{"https://evil.example/", "/dashboard"},
		{"/login", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			resp, body := e.do(t, call{method: http.MethodPost, path: "/api/login", body: map[string]string{
				"email": "ana@example.com", "password": "senha123", "next": tt.next,
			}})
			require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
			assert.Equal(t, tt.want, body["redirect"])
			assert.NotNil(t, sessionCookie(resp))
		})
	}
}

func TestLogin_NextFromQuery(t *testing.T) {
	e := newTestEnv(t)
	e.user(t, "Ana", "ana@example.com", models.UserTypeClient)

	path := "/api/login?next=" + url.QueryEscape("/publicar-servico")
	resp, body := e.do(t, call{method: http.MethodPost, path: path, body: map[string]string{
		"email": "ana@example.com", "password": "senha123",
	}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "/publicar-servico", body["redirect"])
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newTestEnv(t)
	e.user(t, "Ana", "ana@example.com", models.UserTypeClient)

	resp, body := e.do(t, call{method: http.MethodPost, path: "/api/login", body: map[string]string{
		"email": "ana@example.com", "password": "errada",
	}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, sessionCookie(resp))

	resp, _ = e.do(t, call{method: http.MethodPost, path: "/api/login", body: map[string]string{
		"email": "ninguem@example.com", "password": "senha123",
	}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoute_RedirectsToLogin(t *testing.T) {
	e := newTestEnv(t)

	resp, body := e.do(t, call{method: http.MethodGet, path: "/api/dashboard"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fdashboard", body["redirect"])

	id := uuid.NewString()
	resp, body = e.do(t, call{method: http.MethodGet, path: "/api/servicos/" + id})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login?next="+url.QueryEscape("/servicos/"+id), body["redirect"])
}

func TestPublish(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	caio := e.user(t, "Caio", "caio@example.com", models.UserTypeProfessional)

	resp, body := e.do(t, call{method: http.MethodGet, path: "/api/publicar-servico", as: ana})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, data(t, body)["categories"], len(models.Categories))

	resp, body = e.do(t, call{method: http.MethodPost, path: "/api/publicar-servico", body: publishBody("Pintura da sala", "R$ 1.500,50"), as: ana})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	d := data(t, body)
	assert.Equal(t, "pending", d["status"])
	assert.Equal(t, "R$ 1.500,50", d["budget_display"])
	assert.Equal(t, "/servicos/"+d["id"].(string), body["redirect"])

	resp, _ = e.do(t, call{method: http.MethodPost, path: "/api/publicar-servico", body: publishBody("Pintura da sala", "100"), as: caio})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestPublish_Invalid(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)

	resp, body := e.do(t, call{method: http.MethodPost, path: "/api/publicar-servico", body: publishBody("abc", "R$ 0,00"), as: ana})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "budget")

	all, err := e.stores.Requests.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListServices_Filter(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	e.publish(t, ana, "Pintura de quarto", "R$ 200,00")
	e.publish(t, ana, "Pintura de casa inteira", "R$ 3.000,00")
	e.publishIn(t, ana, "Aulas Particulares", "Aula de violão", "R$ 150,00")

	resp, body := e.do(t, call{method: http.MethodGet, path: "/api/servicos?q=PINTURA&faixa=" + url.QueryEscape("R$ 100 - R$ 250")})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d := data(t, body)
	items := d["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Pintura de quarto", items[0].(map[string]any)["title"])

	resp, body = e.do(t, call{method: http.MethodGet, path: "/api/servicos?faixa=500-100"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d = data(t, body)
	assert.Empty(t, d["items"])
	assert.Equal(t, true, d["filters"].(map[string]any)["range"].(map[string]any)["inverted"])

	resp, body = e.do(t, call{method: http.MethodGet, path: "/api/servicos?limit=2&page=2"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d = data(t, body)
	assert.Len(t, d["items"], 1)
	pg := d["pagination"].(map[string]any)
	assert.EqualValues(t, 3, pg["total"])
	assert.EqualValues(t, 2, pg["total_pages"])
}

func TestServiceDetail_IsOwner(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	caio := e.user(t, "Caio", "caio@example.com", models.UserTypeProfessional)
	id := e.publish(t, ana, "Jardinagem semanal", "R$ 400,00")

	resp, body := e.do(t, call{method: http.MethodGet, path: "/api/servicos/" + id, as: ana})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d := data(t, body)
	assert.Equal(t, true, d["is_owner"])
	assert.Equal(t, "Ana", d["client_name"])
	assert.Equal(t, "Pendente", d["status_label"])

	resp, body = e.do(t, call{method: http.MethodGet, path: "/api/servicos/" + id, as: caio})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, data(t, body)["is_owner"])

	resp, _ = e.do(t, call{method: http.MethodGet, path: "/api/servicos/" + uuid.NewString(), as: ana})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = e.do(t, call{method: http.MethodGet, path: "/api/servicos/nao-e-uuid", as: ana})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProposalFlow_AndDelete(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	caio := e.user(t, "Caio", "caio@example.com", models.UserTypeProfessional)
	id := e.publish(t, ana, "Reforma do banheiro", "R$ 5.000,00")
	proposalsPath := "/api/servicos/" + id + "/propostas"

	resp, body := e.do(t, call{method: http.MethodPost, path: proposalsPath, as: caio, body: map[string]string{
		"price": "R$ 4.500,00", "delivery_time": "10 dias", "message": "Faço com garantia",
	}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	proposalID := data(t, body)["id"].(string)

	resp, _ = e.do(t, call{method: http.MethodPost, path: proposalsPath, as: ana, body: map[string]string{
		"price": "100", "delivery_time": "1 dia",
	}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = e.do(t, call{method: http.MethodGet, path: proposalsPath, as: caio})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = e.do(t, call{method: http.MethodGet, path: proposalsPath, as: ana})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := body["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Caio", list[0].(map[string]any)["professional_name"])

	resp, _ = e.do(t, call{method: http.MethodDelete, path: "/api/servicos/" + id, as: caio})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = e.do(t, call{method: http.MethodDelete, path: "/api/servicos/" + id, as: ana})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	_, err := e.stores.Proposals.Get(context.Background(), uuid.MustParse(proposalID))
	assert.ErrorIs(t, err, store.ErrNotFound)
	resp, _ = e.do(t, call{method: http.MethodGet, path: "/api/servicos/" + id, as: ana})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAcceptProposal(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	caio := e.user(t, "Caio", "caio@example.com", models.UserTypeProfessional)
	id := e.publish(t, ana, "Site institucional", "R$ 2.000,00")

	_, body := e.do(t, call{method: http.MethodPost, path: "/api/servicos/" + id + "/propostas", as: caio, body: map[string]string{
		"price": "1800", "delivery_time": "15 dias",
	}})
	proposalID := data(t, body)["id"].(string)

	resp, _ := e.do(t, call{method: http.MethodPatch, path: "/api/propostas/" + proposalID + "/aceitar", as: caio})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = e.do(t, call{method: http.MethodPatch, path: "/api/propostas/" + proposalID + "/aceitar", as: ana})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "in_progress", data(t, body)["status"])

	_, body = e.do(t, call{method: http.MethodGet, path: "/api/servicos/" + id, as: ana})
	assert.Equal(t, "in_progress", data(t, body)["status"])

	resp, _ = e.do(t, call{method: http.MethodPatch, path: "/api/propostas/" + proposalID + "/aceitar", as: ana})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUpdateStatus(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	id := e.publish(t, ana, "Limpeza pós-obra", "R$ 800,00")
	path := "/api/servicos/" + id + "/status"

	resp, body := e.do(t, call{method: http.MethodPatch, path: path, as: ana, body: map[string]string{"status": "completed"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "Status atualizado para Concluído", body["message"])

	resp, _ = e.do(t, call{method: http.MethodPatch, path: path, as: ana, body: map[string]string{"status": "archived"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDashboard(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	e.publish(t, ana, "Pintura de muro", "R$ 300,00")

	resp, body := e.do(t, call{method: http.MethodGet, path: "/api/dashboard", as: ana})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	d := data(t, body)
	assert.Equal(t, "Olá, Ana!", d["profile"].(map[string]any)["greeting"])
	assert.EqualValues(t, 1, d["metrics"].(map[string]any)["published"])
	assert.Equal(t, true, d["activity_ready"])
	activity := d["activity"].([]any)
	require.Len(t, activity, 1)
	assert.Equal(t, "Serviço publicado: Pintura de muro", activity[0].(map[string]any)["title"])
}

func TestProfessionals(t *testing.T) {
	e := newTestEnv(t)
	e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	caio := e.user(t, "Caio Pintor", "caio@example.com", models.UserTypeProfessional)

	resp, body := e.do(t, call{method: http.MethodGet, path: "/api/profissionais"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	resp, body = e.do(t, call{method: http.MethodGet, path: "/api/profissionais/" + caio.ID.String()})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, data(t, body)["proposals_sent"])
}

func TestFormatCurrency(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, call{method: http.MethodGet, path: "/api/moeda?valor=150050"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d := data(t, body)
	assert.Equal(t, "R$ 1.500,50", d["display"])
	assert.Equal(t, "150050", d["raw"])
}

func TestNotFound(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, call{method: http.MethodGet, path: "/nao-existe"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Página não encontrada", body["message"])

	resp, _ = e.do(t, call{method: http.MethodGet, path: "/api/nao-existe"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCategories(t *testing.T) {
	e := newTestEnv(t)
	ana := e.user(t, "Ana", "ana@example.com", models.UserTypeClient)
	e.publish(t, ana, "Pintura de portão", "R$ 250,00")

	resp, body := e.do(t, call{method: http.MethodGet, path: "/api/categorias"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := body["data"].([]any)
	require.Len(t, list, len(models.Categories))
	for _, item := range list {
		m := item.(map[string]any)
		want := 0.0
		if m["name"] == "Pintura" {
			want = 1
		}
		assert.Equal(t, want, m["open"], m["name"])
	}
}
