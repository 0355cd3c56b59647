package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopbee/backend/internal/cart"
	"github.com/shopbee/backend/internal/checkout"
	"github.com/shopbee/backend/internal/config"
	"github.com/shopbee/backend/internal/hash"
	"github.com/shopbee/backend/internal/models"
	"github.com/shopbee/backend/internal/orders"
	"github.com/shopbee/backend/internal/service/token"
)

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

// fakePublisher records events instead of talking to a broker.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, _ := event.(map[string]any)
	f.events = append(f.events, publishedEvent{Topic: topic, Key: key, Event: ev})
	return nil
}

func (f *fakePublisher) byType(typ string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.events {
		if e.Event["type"] == typ {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Carts    *cart.Registry
	Pub      *fakePublisher
	Tokens   *token.Service
	Auth     *AuthHandler
	Product  *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	pub := &fakePublisher{}
	carts := cart.NewRegistry()
	tokens := &token.Service{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	orderService := &orders.Service{DB: db, Producer: pub}
	submitter := checkout.NewSubmitter(orderService)

	return &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     db,
		Carts:  carts,
		Pub:    pub,
		Tokens: tokens,
		Auth: &AuthHandler{
			DB:        db,
			Tokens:    tokens,
			Producer:  pub,
			Carts:     carts,
			Submitter: submitter,
		},
		Product: &ProductHandler{DB: db},
		Cart:    &CartHandler{DB: db, Carts: carts, Producer: pub},
		Checkout: &CheckoutHandler{
			Carts:     carts,
			Submitter: submitter,
			Orders:    orderService,
		},
		Admin: &AdminHandler{DB: db, Producer: pub},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser mimics what the bearer middleware puts on the context.
func asUser(c echo.Context, userID uint, role string) {
	c.Set("userID", userID)
	c.Set("role", role)
}

func (env *testEnv) createUser(name, email, password, role string) models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)
	user := models.User{Name: name, Email: email, PasswordHash: pwHash, Role: role}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) createProduct(name string, price float64, stock uint) models.Product {
	product := models.Product{
		ProductName:        name,
		ProductDescription: name + " description",
		Price:              price,
		Quantity:           stock,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}
