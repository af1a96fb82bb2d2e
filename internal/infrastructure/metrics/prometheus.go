package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

const namespace = "pos_inventory"

// Recorder publica los eventos del motor de inventario como métricas Prometheus.
// Usa un registry propio para no chocar con el registry global en tests.
type Recorder struct {
	registry *prometheus.Registry

	movementsApplied  *prometheus.CounterVec
	movementsRejected *prometheus.CounterVec
	conflictRetries   *prometheus.CounterVec
	alertsRaised      *prometheus.CounterVec
	alertsResolved    *prometheus.CounterVec
}

// NewRecorder crea el registry con los contadores del ledger y los collectors de proceso y runtime.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		movementsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_applied_total",
			Help:      "Movimientos confirmados en el ledger por tipo.",
		}, []string{"type"}),
		movementsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_rejected_total",
			Help:      "Movimientos rechazados por tipo y motivo.",
		}, []string{"type", "reason"}),
		conflictRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conflict_retries_total",
			Help:      "Reintentos por conflicto de concurrencia.",
		}, []string{"operation"}),
		alertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_raised_total",
			Help:      "Alertas de stock creadas por tipo.",
		}, []string{"type"}),
		alertsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_resolved_total",
			Help:      "Alertas de stock resueltas por tipo.",
		}, []string{"type"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.movementsApplied,
		r.movementsRejected,
		r.conflictRetries,
		r.alertsRaised,
		r.alertsResolved,
	)
	return r
}

var _ inventory.Recorder = (*Recorder)(nil)

func (r *Recorder) MovementApplied(t entity.MovementType) {
	r.movementsApplied.WithLabelValues(string(t)).Inc()
}

func (r *Recorder) MovementRejected(t entity.MovementType, reason string) {
	r.movementsRejected.WithLabelValues(string(t), reason).Inc()
}

func (r *Recorder) ConflictRetried(op string) {
	r.conflictRetries.WithLabelValues(op).Inc()
}

func (r *Recorder) AlertRaised(t entity.AlertType) {
	r.alertsRaised.WithLabelValues(string(t)).Inc()
}

func (r *Recorder) AlertResolved(t entity.AlertType) {
	r.alertsResolved.WithLabelValues(string(t)).Inc()
}

// Registry expone el registry (tests y collectors adicionales).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler sirve /metrics en Fiber.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
