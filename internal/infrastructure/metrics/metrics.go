package metrics

import (
	"strconv"

	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var productCreations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_product_creations_total",
	Help: "Product creation attempts partitioned by outcome status code.",
}, []string{"status"})

var productEventFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "catalog_product_event_publish_failures_total",
	Help: "product_created events that could not be written to the broker.",
})

func ObserveProductCreation(err error) {
	status := "200"
	if err != nil {
		status = strconv.Itoa(errs.GetErrorStatusCode(err))
	}

	productCreations.WithLabelValues(status).Inc()
}

func ObserveEventPublishFailure() {
	productEventFailures.Inc()
}
