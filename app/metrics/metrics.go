package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Catalog cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	Builds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_builds_total",
			Help: "Catalog rebuild attempts by outcome",
		},
		[]string{"outcome"},
	)

	BuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_build_duration_seconds",
			Help:    "Time spent fetching and building the catalog",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		},
	)

	CatalogOffers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_offers",
			Help: "Offers in the last built catalog per section",
		},
		[]string{"section"},
	)

	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(CacheRequests, Builds, BuildDuration, CatalogOffers)
}

// Handler exposes the collectors in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
