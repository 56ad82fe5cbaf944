package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_cart_mutations_total",
		Help: "Applied cart slot mutations by operation.",
	}, []string{"operation"})

	ProductEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_product_events_total",
		Help: "Product lifecycle events by type and publish outcome.",
	}, []string{"event_type", "outcome"})
)
