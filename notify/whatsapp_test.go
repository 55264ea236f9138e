package notify

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanTurizo/trigo-pan-expres/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:              "3f2504e0-4f89-11d3-9a0c-0305e82c3301",
		CustomerName:    "Ana Gomez",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "3001234567",
		DeliveryAddress: "Calle 10 #20-30, Centro",
		PaymentMethod:   models.PaymentMethodCash,
		Total:           37000,
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Pan Francés", Price: 1000, Quantity: 2},
			{ProductID: "c1", ProductName: "Torta de Chocolate", Price: 35000, Quantity: 1},
		},
	}
}

func TestBuildOrderMessage(t *testing.T) {
	msg := BuildOrderMessage("Trigo Pan Exprés", sampleOrder())

	assert.Contains(t, msg, "🍞 *NUEVO PEDIDO - Trigo Pan Exprés*")
	assert.Contains(t, msg, "📋 *ID Pedido:* 3f2504e0")
	assert.Contains(t, msg, "👤 *Cliente:* Ana Gomez")
	assert.Contains(t, msg, "📧 *Email:* ana@example.com")
	assert.Contains(t, msg, "📱 *Teléfono:* 3001234567")
	assert.Contains(t, msg, "📍 *Dirección:* Calle 10 #20-30, Centro")
	assert.Contains(t, msg, "2x Pan Francés - $2.000 COP")
	assert.Contains(t, msg, "1x Torta de Chocolate - $35.000 COP")
	assert.Contains(t, msg, "💰 *Total:* $37.000 COP")
	assert.Contains(t, msg, "💳 *Forma de pago:* Efectivo")
	assert.NotContains(t, msg, "📝 *Notas:*")
}

func TestBuildOrderMessageWithNotesAndTransfer(t *testing.T) {
	order := sampleOrder()
	order.Notes = "Sin azúcar, por favor"
	order.PaymentMethod = models.PaymentMethodTransfer

	msg := BuildOrderMessage("Trigo Pan Exprés", order)

	assert.Contains(t, msg, "💳 *Forma de pago:* Transferencia")
	assert.True(t, strings.HasSuffix(msg, "📝 *Notas:* Sin azúcar, por favor"))
}

func TestWhatsAppDispatchLink(t *testing.T) {
	w := NewWhatsApp("573117643702")

	link := w.Dispatch("🍞 pedido #1\ntotal $2.000")

	require.True(t, strings.HasPrefix(link, "https://wa.me/573117643702?text="))
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "🍞 pedido #1\ntotal $2.000", u.Query().Get("text"))
}

func TestFormatCOP(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		950:     "950",
		1000:    "1.000",
		37000:   "37.000",
		1250000: "1.250.000",
		-4500:   "-4.500",
		2000.4:  "2.000",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatCOP(amount), "amount %v", amount)
	}
}
