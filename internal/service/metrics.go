package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Kerhoff/wishlists/internal/models"
)

var storeOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "wishlists",
		Name:      "store_operations_total",
		Help:      "Mutating store operations by entity, operation and outcome.",
	},
	[]string{"entity", "op", "outcome"},
)

func observe(entity, op string, err error) {
	storeOperationsTotal.WithLabelValues(entity, op, outcome(err)).Inc()
}

func outcome(err error) string {
	var verr *models.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrWishlistNotFound), errors.Is(err, ErrItemNotFound):
		return "not_found"
	case errors.As(err, &verr):
		return verr.Kind.String()
	default:
		return "error"
	}
}
