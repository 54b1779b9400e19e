package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"bakehouse/internal/cart"
	"bakehouse/internal/handlers"
	"bakehouse/internal/middleware"
	"bakehouse/internal/models"
	"bakehouse/internal/repositories"
	"bakehouse/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv bundles the app with the repositories the tests seed directly.
type testEnv struct {
	app         *fiber.App
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
}

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers/services wired like main.
func setupApp() (*testEnv, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Product{}, &models.User{}, &models.Order{}, &models.OrderItem{},
		&models.Review{}, &models.Message{}, &models.Testimonial{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	messageRepo := repositories.NewGORMMessageRepository(db)
	testimonialRepo := repositories.NewGORMTestimonialRepository(db)

	cartStore := cart.NewStore()

	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, nil) // nil publisher: no broker in tests
	authService := services.NewAuthService(userRepo, jwtSecret)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	messageService := services.NewMessageService(messageRepo)
	testimonialService := services.NewTestimonialService(testimonialRepo)
	analyticsService := services.NewAnalyticsService(orderRepo)

	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService, cartStore)
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartStore, productService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	messageHandler := handlers.NewMessageHandler(messageService)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterPublicRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)
	testimonialHandler.RegisterPublicRoutes(apiV1)
	messageHandler.RegisterPublicRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(authService))
	cartHandler.RegisterRoutes(authed)
	orderHandler.RegisterRoutes(authed)
	reviewHandler.RegisterRoutes(authed)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired())
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	messageHandler.RegisterAdminRoutes(admin)
	testimonialHandler.RegisterAdminRoutes(admin)
	analyticsHandler.RegisterAdminRoutes(admin)

	return &testEnv{app: app, userRepo: userRepo, productRepo: productRepo}, nil
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(ioutil.Discard)
	code := m.Run()
	os.Exit(code)
}

func jsonRequest(method, target string, body interface{}, token string) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a customer account and returns its token.
func registerAndLogin(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":     email,
		"full_name": "Test Customer",
		"password":  "password123",
	}, "")
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req = jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "password123",
	}, "")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp.Token)
	return loginResp.Token
}

// loginAdmin seeds an admin account directly and returns its token.
func loginAdmin(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	err := env.userRepo.Create(&models.User{
		Email:    email,
		FullName: "Shop Admin",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	})
	assert.NoError(t, err)

	req := jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "adminpass",
	}, "")
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &loginResp)
	return loginResp.Token
}

func seedProduct(t *testing.T, env *testEnv, name string, price float64, inStock bool) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Category: "bread", InStock: inStock}
	assert.NoError(t, env.productRepo.Create(product))
	return product
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, env, "auth-flow@example.com")
	assert.NotEmpty(t, token)

	// Duplicate registration is rejected with 409
	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":     "auth-flow@example.com",
		"full_name": "Test Customer",
		"password":  "password123",
	}, "")
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password is rejected with 401
	req = jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "auth-flow@example.com",
		"password": "nope",
	}, "")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPasswordResetFlow(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	registerAndLogin(t, env, "reset-flow@example.com")

	req := jsonRequest(http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{
		"email": "reset-flow@example.com",
	}, "")
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var forgotResp struct {
		ResetToken string `json:"reset_token"`
	}
	decodeBody(t, resp, &forgotResp)
	assert.NotEmpty(t, forgotResp.ResetToken)

	req = jsonRequest(http.MethodPost, "/api/v1/auth/reset-password", map[string]string{
		"token":        forgotResp.ResetToken,
		"new_password": "freshpassword",
	}, "")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// New password works, old one does not
	req = jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "reset-flow@example.com",
		"password": "freshpassword",
	}, "")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "reset-flow@example.com",
		"password": "password123",
	}, "")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductBrowsingIsPublic(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	seedProduct(t, env, "Public Loaf", 6.50, true)

	req := jsonRequest(http.MethodGet, "/api/v1/products", nil, "")
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []models.Product
	decodeBody(t, resp, &products)
	assert.NotEmpty(t, products)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	customerToken := registerAndLogin(t, env, "not-admin@example.com")

	body := map[string]interface{}{
		"name": "Rye Loaf", "price": 5.0, "category": "bread", "in_stock": true,
	}

	// Unauthenticated → 401
	req := jsonRequest(http.MethodPost, "/api/v1/admin/products", body, "")
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Customer → 403
	req = jsonRequest(http.MethodPost, "/api/v1/admin/products", body, customerToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin → 201
	adminToken := loginAdmin(t, env, "admin-products@example.com")
	req = jsonRequest(http.MethodPost, "/api/v1/admin/products", body, adminToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, env, "shopper@example.com")
	loaf := seedProduct(t, env, "Checkout Loaf", 6.50, true)

	// Two adds of the same product merge into one line
	for i := 0; i < 2; i++ {
		req := jsonRequest(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": loaf.ID}, token)
		resp, err := env.app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	req := jsonRequest(http.MethodGet, "/api/v1/cart", nil, token)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	var snap cart.Snapshot
	decodeBody(t, resp, &snap)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.ItemCount)
	assert.InDelta(t, 13.0, snap.Total, 1e-9)

	// Checkout creates a pending order with snapshot prices
	req = jsonRequest(http.MethodPost, "/api/v1/orders", map[string]string{
		"delivery_address": "12 Baker Street, Springfield",
		"phone":            "555-0123",
	}, token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 13.0, order.TotalAmount, 1e-9)

	// The cart is cleared after checkout
	req = jsonRequest(http.MethodGet, "/api/v1/cart", nil, token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	decodeBody(t, resp, &snap)
	assert.Empty(t, snap.Items)

	// The order shows up in the customer's order list
	req = jsonRequest(http.MethodGet, "/api/v1/orders", nil, token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	// Checking out an empty cart fails
	req = jsonRequest(http.MethodPost, "/api/v1/orders", map[string]string{
		"delivery_address": "12 Baker Street, Springfield",
		"phone":            "555-0123",
	}, token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutRejectsOutOfStockProduct(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, env, "stockless@example.com")
	cake := seedProduct(t, env, "Sold Out Cake", 24.0, true)

	req := jsonRequest(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": cake.ID}, token)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Product sells out between add-to-cart and checkout
	cake.InStock = false
	assert.NoError(t, env.productRepo.Update(cake))

	req = jsonRequest(http.MethodPost, "/api/v1/orders", map[string]string{
		"delivery_address": "12 Baker Street, Springfield",
		"phone":            "555-0123",
	}, token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderStatusLifecycleOverHTTP(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	customerToken := registerAndLogin(t, env, "lifecycle@example.com")
	adminToken := loginAdmin(t, env, "admin-lifecycle@example.com")
	loaf := seedProduct(t, env, "Lifecycle Loaf", 6.50, true)

	req := jsonRequest(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": loaf.ID}, customerToken)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = jsonRequest(http.MethodPost, "/api/v1/orders", map[string]string{
		"delivery_address": "12 Baker Street, Springfield",
		"phone":            "555-0123",
	}, customerToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	var order models.Order
	decodeBody(t, resp, &order)

	// Admin confirms the order
	req = jsonRequest(http.MethodPatch, "/api/v1/admin/orders/"+order.ID+"/status", map[string]string{"status": "confirmed"}, adminToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Customer observes the new status
	req = jsonRequest(http.MethodGet, "/api/v1/orders/"+order.ID, nil, customerToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	var observed models.Order
	decodeBody(t, resp, &observed)
	assert.Equal(t, models.OrderStatusConfirmed, observed.Status)

	// Illegal jump confirmed → delivered is rejected and nothing changes
	req = jsonRequest(http.MethodPatch, "/api/v1/admin/orders/"+order.ID+"/status", map[string]string{"status": "delivered"}, adminToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = jsonRequest(http.MethodGet, "/api/v1/orders/"+order.ID, nil, customerToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	decodeBody(t, resp, &observed)
	assert.Equal(t, models.OrderStatusConfirmed, observed.Status)

	// Another customer cannot read this order
	otherToken := registerAndLogin(t, env, "nosy@example.com")
	req = jsonRequest(http.MethodGet, "/api/v1/orders/"+order.ID, nil, otherToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestReviewFlowOverHTTP(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, env, "reviewer@example.com")
	loaf := seedProduct(t, env, "Reviewed Loaf", 6.50, true)

	req := jsonRequest(http.MethodPost, "/api/v1/products/"+loaf.ID+"/reviews", map[string]interface{}{
		"rating": 5, "title": "Fantastic", "comment": "Crackly crust, soft crumb.",
	}, token)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var review models.Review
	decodeBody(t, resp, &review)
	assert.NotEmpty(t, review.ID)

	// Reviews are publicly readable
	req = jsonRequest(http.MethodGet, "/api/v1/products/"+loaf.ID+"/reviews", nil, "")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	var reviews []models.Review
	decodeBody(t, resp, &reviews)
	assert.Len(t, reviews, 1)

	// Helpful vote
	req = jsonRequest(http.MethodPost, "/api/v1/reviews/"+review.ID+"/helpful", nil, token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Rating out of bounds → 400 before anything is stored
	req = jsonRequest(http.MethodPost, "/api/v1/products/"+loaf.ID+"/reviews", map[string]interface{}{
		"rating": 9, "title": "Too good", "comment": "Off the scale.",
	}, token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestContactMessageFlowOverHTTP(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	// Anyone can submit a contact message
	req := jsonRequest(http.MethodPost, "/api/v1/messages", map[string]string{
		"name":    "Jamie Customer",
		"email":   "jamie@example.com",
		"subject": "Wedding cake inquiry",
		"body":    "Do you take orders three months ahead?",
	}, "")
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var message models.Message
	decodeBody(t, resp, &message)
	assert.Equal(t, models.MessageStatusNew, message.Status)

	// Missing email is rejected before any write
	req = jsonRequest(http.MethodPost, "/api/v1/messages", map[string]string{
		"name":    "No Email",
		"subject": "Hi",
		"body":    "Hello there",
	}, "")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Admin replies and the status advances
	adminToken := loginAdmin(t, env, "admin-inbox@example.com")
	req = jsonRequest(http.MethodPost, "/api/v1/admin/messages/"+message.ID+"/reply", map[string]string{
		"reply": "Yes, we do.",
	}, adminToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var replied models.Message
	decodeBody(t, resp, &replied)
	assert.Equal(t, models.MessageStatusReplied, replied.Status)
	assert.Equal(t, "Yes, we do.", replied.Reply)
}

func TestAnalyticsEndpoint(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, env, "analytics-shopper@example.com")
	loaf := seedProduct(t, env, "Analytics Loaf", 6.50, true)

	req := jsonRequest(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": loaf.ID}, token)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = jsonRequest(http.MethodPost, "/api/v1/orders", map[string]string{
		"delivery_address": "12 Baker Street, Springfield",
		"phone":            "555-0123",
	}, token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	adminToken := loginAdmin(t, env, "admin-analytics@example.com")
	req = jsonRequest(http.MethodGet, "/api/v1/admin/analytics?days=7", nil, adminToken)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summary services.AnalyticsSummary
	decodeBody(t, resp, &summary)
	assert.GreaterOrEqual(t, summary.TotalOrders, 1)
	assert.Greater(t, summary.TotalRevenue, 0.0)
}
