package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/testutil"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/authclient"
	"github.com/Skotchmaster/marketplace/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := &repo.GormRepo{DB: testutil.NewDB(t)}
	e := echo.New()
	Register(e, &Deps{
		StoreHandler:    &StoreHTTP{Svc: &service.StoreService{Repo: r}},
		ProductHandler:  &ProductHTTP{Svc: &service.ProductService{Repo: r}},
		CustomerHandler: &CustomerHTTP{Svc: &service.CustomerService{Repo: r}},
		ReportHandler:   &ReportHTTP{Svc: &service.ReportService{Repo: r}},
		DB:              r.DB,
		JWTSecret:       testSecret,
		AuthClient:      authclient.NewClient(""),
	})
	return &testEnv{E: e, Repo: r}
}

func bearer(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	tok, err := tokens.SignAccessToken(userID.String(), role, time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (env *testEnv) do(method, path string, body any, auth string, headers ...string) *httptest.ResponseRecorder {
	var payload string
	if body != nil {
		b, _ := json.Marshal(body)
		payload = string(b)
	}

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/live", nil, "").Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/ready", nil, "").Code)
}

func TestJaneDoeFlow(t *testing.T) {
	env := newTestEnv(t)
	janeID := uuid.New()
	auth := bearer(t, janeID, "user")

	rec := env.do(http.MethodPost, "/stores", transport.StoreRequest{Name: "Jane's Shop"}, auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPost, "/customers", transport.CreateCustomerRequest{Username: "jane", FirstName: "Jane", LastName: "Doe"}, auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/stores", transport.StoreRequest{Name: "Jane's Shop", Description: "stuff"}, auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	store := decode[transport.StoreResponse](t, rec)
	assert.Equal(t, "Jane Doe", store.SellerName)
	assert.Equal(t, "Jane", store.Seller.FirstName)
	assert.EqualValues(t, 0, store.ProductCount)
	assert.NotNil(t, store.Products)
	assert.Len(t, store.CreatedDate, len(transport.DateLayout))

	rec = env.do(http.MethodPost, "/stores", transport.StoreRequest{Name: "Second"}, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var productIDs []uuid.UUID
	for _, price := range []string{"10.00", "5.50"} {
		body := map[string]any{"name": "item " + price, "price": price, "quantity": 1}
		rec = env.do(http.MethodPost, "/products", body, auth)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		productIDs = append(productIDs, decode[transport.ProductResponse](t, rec).ID)
	}

	rec = env.do(http.MethodGet, "/stores/"+store.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[transport.StoreResponse](t, rec)
	assert.EqualValues(t, 2, got.ProductCount)
	assert.Len(t, got.Products, 2)

	customer, err := env.Repo.GetCustomerByUserID(context.Background(), janeID)
	require.NoError(t, err)
	testutil.SeedOrder(t, env.Repo.DB, customer.ID, nil, productIDs...)

	admin := bearer(t, uuid.New(), tokens.RoleAdmin)
	rec = env.do(http.MethodGet, "/reports/orders?status=incomplete", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[transport.OrdersReport](t, rec)
	assert.Equal(t, "incomplete", report.Status)
	require.Len(t, report.Orders, 1)
	assert.Equal(t, "15.50", report.Orders[0].Total)
	assert.Equal(t, "Jane Doe", report.Orders[0].CustomerName)
}

func TestUpdateStore_StatusCodes(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.SeedCustomer(t, env.Repo.DB, "Jane", "Doe")
	other := testutil.SeedCustomer(t, env.Repo.DB, "John", "Roe")
	s := testutil.SeedStore(t, env.Repo.DB, owner.ID, "original")

	rec := env.do(http.MethodPut, "/stores/"+s.ID.String(), transport.StoreRequest{Name: "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPut, "/stores/"+s.ID.String(), transport.StoreRequest{Name: "x"}, bearer(t, other.UserID, "user"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPut, "/stores/"+uuid.NewString(), transport.StoreRequest{Name: "x"}, bearer(t, other.UserID, "user"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPut, "/stores/not-a-uuid", transport.StoreRequest{Name: "x"}, bearer(t, owner.UserID, "user"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPut, "/stores/"+s.ID.String(), transport.StoreRequest{Name: ""}, bearer(t, owner.UserID, "user"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPut, "/stores/"+s.ID.String(), transport.StoreRequest{Name: "renamed"}, bearer(t, owner.UserID, "user"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	got, err := env.Repo.GetStore(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
}

func TestListStores_Representations(t *testing.T) {
	env := newTestEnv(t)
	seller := testutil.SeedCustomer(t, env.Repo.DB, "Jane", "Doe")
	idle := testutil.SeedCustomer(t, env.Repo.DB, "Idle", "Owner")
	testutil.SeedStore(t, env.Repo.DB, seller.ID, "selling")
	testutil.SeedStore(t, env.Repo.DB, idle.ID, "idle")
	testutil.SeedProduct(t, env.Repo.DB, seller.ID, "a", "1")

	for _, path := range []string{"/stores", "/stores?include_products=TRUE"} {
		rec := env.do(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		full := decode[[]map[string]any](t, rec)
		require.Len(t, full, 1, path)
		assert.Contains(t, full[0], "products")
		assert.Contains(t, full[0], "created_date")
		assert.Equal(t, "Jane Doe", full[0]["seller_name"])
	}

	for _, path := range []string{"/stores?include_products=false", "/stores?include_products="} {
		rec := env.do(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		light := decode[[]map[string]any](t, rec)
		require.Len(t, light, 1, path)
		assert.NotContains(t, light[0], "products", path)
		assert.NotContains(t, light[0], "created_date", path)
		assert.EqualValues(t, 1, light[0]["product_count"], path)
	}
}

func TestGetStore_BadAndMissingID(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/stores/abc", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/stores/"+uuid.NewString(), nil, "").Code)
}

func TestSearchStores_DisabledWithoutIndex(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/stores/search?q=jane", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOrdersReport_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/reports/orders", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/reports/orders", nil, bearer(t, uuid.New(), "user")).Code)
}

func TestOrdersReport_HTML(t *testing.T) {
	env := newTestEnv(t)
	c := testutil.SeedCustomer(t, env.Repo.DB, "Jane", "Doe")
	pt := testutil.SeedPaymentType(t, env.Repo.DB, c.ID)
	p := testutil.SeedProduct(t, env.Repo.DB, c.ID, "lamp", "1234.5")
	testutil.SeedOrder(t, env.Repo.DB, c.ID, &pt.ID, p.ID)

	rec := env.do(http.MethodGet, "/reports/orders?status=complete", nil, bearer(t, uuid.New(), tokens.RoleAdmin),
		echo.HeaderAccept, "text/html,application/xhtml+xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)

	body := rec.Body.String()
	assert.Contains(t, body, "Orders: complete")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "1,234.50")
}

func TestProducts_OwnerChecks(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.SeedCustomer(t, env.Repo.DB, "Jane", "Doe")
	other := testutil.SeedCustomer(t, env.Repo.DB, "John", "Roe")
	p := testutil.SeedProduct(t, env.Repo.DB, owner.ID, "lamp", "12.00")
	path := "/products/" + p.ID.String()

	rec := env.do(http.MethodPatch, path, map[string]any{"quantity": 4}, bearer(t, other.UserID, "user"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPatch, path, map[string]any{"price": "-1"}, bearer(t, owner.UserID, "user"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPatch, path, map[string]any{"quantity": 4}, bearer(t, owner.UserID, "user"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 4, decode[transport.ProductResponse](t, rec).Quantity)

	rec = env.do(http.MethodDelete, path, nil, bearer(t, other.UserID, "user"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodDelete, path, nil, bearer(t, owner.UserID, "user"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, path, nil, "").Code)

	var n int64
	require.NoError(t, env.Repo.DB.Unscoped().Model(&models.Product{}).Where("id = ?", p.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestGetProducts_Meta(t *testing.T) {
	env := newTestEnv(t)
	c := testutil.SeedCustomer(t, env.Repo.DB, "Jane", "Doe")
	for _, n := range []string{"a", "b", "c"} {
		testutil.SeedProduct(t, env.Repo.DB, c.ID, n, "1")
	}

	rec := env.do(http.MethodGet, "/products?page=2&size=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []transport.ProductResponse `json:"data"`
		Meta map[string]any              `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.EqualValues(t, 3, resp.Meta["total"])
	assert.EqualValues(t, 2, resp.Meta["total_pages"])
	assert.Equal(t, true, resp.Meta["has_prev"])
	assert.Equal(t, false, resp.Meta["has_next"])
}

func TestCustomers_MeAndConflict(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	auth := bearer(t, userID, "user")

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/customers/me", nil, auth).Code)

	req := transport.CreateCustomerRequest{FirstName: "Jane", LastName: "Doe"}
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/customers", req, auth).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/customers", req, auth).Code)

	rec := env.do(http.MethodGet, "/customers/me", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[transport.CustomerResponse](t, rec)
	assert.Equal(t, userID, me.UserID)
	assert.Equal(t, "Doe", me.LastName)
}
