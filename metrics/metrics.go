package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trigopan",
		Name:      "orders_placed_total",
		Help:      "Orders successfully persisted and handed off.",
	})
	OrderSubmitFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trigopan",
		Name:      "order_submit_failures_total",
		Help:      "Failed order submissions by reason.",
	}, []string{"reason"})
	NotificationsDispatched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trigopan",
		Name:      "notifications_dispatched_total",
		Help:      "WhatsApp hand-offs produced for new orders.",
	})
)

func init() {
	prometheus.MustRegister(OrdersPlaced, OrderSubmitFailures, NotificationsDispatched)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
