package notify

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/IvanTurizo/trigo-pan-expres/models"
)

// Dispatcher hands a formatted order summary to the bakery's messaging
// surface. Delivery is best effort: the returned link is given back to the
// storefront to open, and no confirmation is ever consulted.
type Dispatcher interface {
	Dispatch(message string) string
}

// WhatsApp builds wa.me deep links for a fixed destination number.
type WhatsApp struct {
	Number string
}

func NewWhatsApp(number string) *WhatsApp {
	return &WhatsApp{Number: number}
}

func (w *WhatsApp) Dispatch(message string) string {
	link := "https://wa.me/" + w.Number + "?text=" + url.QueryEscape(message)
	log.Printf("📨 WhatsApp dispatch queued for %s (%d chars)", w.Number, len(message))
	return link
}

var paymentLabels = map[models.PaymentMethod]string{
	models.PaymentMethodCash:     "Efectivo",
	models.PaymentMethodTransfer: "Transferencia",
}

// BuildOrderMessage renders the WhatsApp summary the bakery receives for a
// new order: short reference, customer details, itemized lines and total.
func BuildOrderMessage(bakeryName string, order *models.Order) string {
	var lines []string
	for _, item := range order.Items {
		subtotal := item.Price * float64(item.Quantity)
		lines = append(lines, fmt.Sprintf("%dx %s - $%s COP", item.Quantity, item.ProductName, FormatCOP(subtotal)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍞 *NUEVO PEDIDO - %s*\n", bakeryName)
	fmt.Fprintf(&b, "📋 *ID Pedido:* %s\n\n", order.ShortID())
	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", order.CustomerName)
	fmt.Fprintf(&b, "📧 *Email:* %s\n", order.CustomerEmail)
	fmt.Fprintf(&b, "📱 *Teléfono:* %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "📍 *Dirección:* %s\n\n", order.DeliveryAddress)
	fmt.Fprintf(&b, "📦 *Productos:*\n%s\n\n", strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "💰 *Total:* $%s COP\n", FormatCOP(order.Total))
	fmt.Fprintf(&b, "💳 *Forma de pago:* %s", paymentLabels[order.PaymentMethod])
	if order.Notes != "" {
		fmt.Fprintf(&b, "\n\n📝 *Notas:* %s", order.Notes)
	}
	return b.String()
}

// FormatCOP renders a peso amount with es-CO thousands grouping. Bakery
// prices are whole pesos, so fractions are dropped.
func FormatCOP(amount float64) string {
	digits := fmt.Sprintf("%.0f", amount)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ".")
	if neg {
		out = "-" + out
	}
	return out
}
