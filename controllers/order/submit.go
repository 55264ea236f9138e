package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/cart"
	"github.com/IvanTurizo/trigo-pan-expres/metrics"
	"github.com/IvanTurizo/trigo-pan-expres/models"
	"github.com/IvanTurizo/trigo-pan-expres/notify"
)

// -------- Errors --------

var (
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrSubmissionInFlight = errors.New("ya hay un pedido en proceso para esta sesión")
)

// ValidationError reports the first checkout field that failed its format
// rule. Nothing is persisted when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PersistenceError wraps a failed order insert. The cart is left untouched
// so the shopper can retry.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "no se pudo guardar el pedido: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// -------- Order Store --------

// OrderStore persists submitted orders. The production implementation is
// backed by GORM; tests substitute a fake.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

type GormOrderStore struct {
	db *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

// CreateOrder writes the order and its item snapshot in one transaction.
// Either the whole record lands or none of it does.
func (s *GormOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// -------- Request & validation --------

type SubmitOrderRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// validateSubmitOrder checks the checkout fields in form order; the first
// violated rule wins. Trimmed values are written back into req. Length
// bounds count characters, not bytes, so accented input measures the way
// the storefront form does.
func validateSubmitOrder(req *SubmitOrderRequest) *ValidationError {
	req.Name = strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(req.Name) < 2 {
		return &ValidationError{Field: "name", Message: "El nombre debe tener al menos 2 caracteres"}
	}
	if utf8.RuneCountInString(req.Name) > 100 {
		return &ValidationError{Field: "name", Message: "El nombre debe tener máximo 100 caracteres"}
	}

	req.Email = strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(req.Email) {
		return &ValidationError{Field: "email", Message: "Debe ser un email válido"}
	}
	if utf8.RuneCountInString(req.Email) > 100 {
		return &ValidationError{Field: "email", Message: "El email debe tener máximo 100 caracteres"}
	}

	req.Phone = strings.TrimSpace(req.Phone)
	if !phonePattern.MatchString(req.Phone) {
		return &ValidationError{Field: "phone", Message: "El teléfono debe tener 10 dígitos"}
	}

	req.Address = strings.TrimSpace(req.Address)
	if utf8.RuneCountInString(req.Address) < 10 {
		return &ValidationError{Field: "address", Message: "La dirección debe ser más específica"}
	}
	if utf8.RuneCountInString(req.Address) > 200 {
		return &ValidationError{Field: "address", Message: "La dirección debe tener máximo 200 caracteres"}
	}

	req.Notes = strings.TrimSpace(req.Notes)
	if utf8.RuneCountInString(req.Notes) > 500 {
		return &ValidationError{Field: "notes", Message: "Las notas deben tener máximo 500 caracteres"}
	}

	switch models.PaymentMethod(req.PaymentMethod) {
	case models.PaymentMethodCash, models.PaymentMethodTransfer:
	default:
		return &ValidationError{Field: "payment_method", Message: "Forma de pago inválida"}
	}

	return nil
}

// -------- Submitter --------

// Submitter turns a session's cart plus checkout details into a persisted
// order and a WhatsApp hand-off. One submission may be in flight per
// session at a time; the latch lives here rather than in the UI so a fast
// double click cannot create two orders.
type Submitter struct {
	carts      *cart.Store
	orders     OrderStore
	dispatcher notify.Dispatcher
	bakeryName string

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewSubmitter(carts *cart.Store, orders OrderStore, dispatcher notify.Dispatcher, bakeryName string) *Submitter {
	return &Submitter{
		carts:      carts,
		orders:     orders,
		dispatcher: dispatcher,
		bakeryName: bakeryName,
		inFlight:   make(map[string]bool),
	}
}

func (s *Submitter) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *Submitter) finish(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

// Submit runs the whole checkout: validate, persist, dispatch, clear.
// On success it returns the stored order and the wa.me link for the
// storefront to open. On any error the cart keeps its contents.
func (s *Submitter) Submit(ctx context.Context, sessionID string, req SubmitOrderRequest) (*models.Order, string, error) {
	if !s.begin(sessionID) {
		metrics.OrderSubmitFailures.WithLabelValues("in_flight").Inc()
		return nil, "", ErrSubmissionInFlight
	}
	defer s.finish(sessionID)

	if verr := validateSubmitOrder(&req); verr != nil {
		metrics.OrderSubmitFailures.WithLabelValues("validation").Inc()
		return nil, "", verr
	}

	items := s.carts.Items(sessionID)
	if len(items) == 0 {
		metrics.OrderSubmitFailures.WithLabelValues("empty_cart").Inc()
		return nil, "", ErrEmptyCart
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  item.Name,
			ProductImage: item.Image,
			Price:        item.Price,
			Quantity:     item.Quantity,
		})
	}

	order := &models.Order{
		CustomerName:    req.Name,
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
		DeliveryAddress: req.Address,
		Notes:           req.Notes,
		Items:           orderItems,
		Total:           total,
		Status:          models.OrderStatusPending,
		PaymentMethod:   models.PaymentMethod(req.PaymentMethod),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		metrics.OrderSubmitFailures.WithLabelValues("persistence").Inc()
		return nil, "", &PersistenceError{Err: err}
	}

	// The order is durable from here on. Dispatch is best effort and the
	// cart clear must not be skipped.
	message := notify.BuildOrderMessage(s.bakeryName, order)
	link := s.dispatcher.Dispatch(message)
	metrics.NotificationsDispatched.Inc()

	s.carts.Clear(sessionID)
	metrics.OrdersPlaced.Inc()

	return order, link, nil
}

// -------- Handler --------

// POST /store/orders
func SubmitOrderHandler(submitter *Submitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req SubmitOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, link, err := submitter.Submit(c.Request.Context(), sessionID, req)
		if err != nil {
			var verr *ValidationError
			switch {
			case errors.As(err, &verr):
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": ErrEmptyCart.Error()})
			case errors.Is(err, ErrSubmissionInFlight):
				c.JSON(http.StatusConflict, gin.H{"error": ErrSubmissionInFlight.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el pedido. Por favor intenta nuevamente."})
			}
			return
		}

		broadcastNewOrder(*order)

		c.JSON(http.StatusCreated, gin.H{
			"message":      fmt.Sprintf("Pedido %s registrado", order.ShortID()),
			"order":        order,
			"whatsapp_url": link,
		})
	}
}
