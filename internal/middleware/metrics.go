package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures, labelled by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// ValidationFailures counts rejected writes per entity type.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_validation_failures_total",
		Help: "Total number of create/update requests rejected by validation",
	}, []string{"entity"})

	// ConstraintViolations counts store-level uniqueness/FK rejections that
	// slipped past the application-level pre-checks.
	ConstraintViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_constraint_violations_total",
		Help: "Total number of database constraint violations on commit",
	}, []string{"entity"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The instance is shared; fiberprometheus registers its collectors in
// the default registry, which tolerates only one registration.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
