package metrics

import (
	"net/http"

	"infra-checklist/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts checklist activity. It implements app.Observer.
type Collector struct {
	registry *prometheus.Registry

	AnswersRecorded     *prometheus.CounterVec
	ResultsCalculated   *prometheus.CounterVec
	SubmissionsRejected prometheus.Counter
	OpenSessions        prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		AnswersRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checklist_answers_recorded_total",
				Help: "Total number of option clicks recorded",
			},
			[]string{"value"},
		),
		ResultsCalculated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checklist_results_total",
				Help: "Total number of completed checklists by result band",
			},
			[]string{"band"},
		),
		SubmissionsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checklist_incomplete_submissions_total",
			Help: "Total number of result requests rejected for unanswered questions",
		}),
		OpenSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "checklist_open_sessions",
			Help: "Number of checklist widgets currently open",
		}),
	}
	c.registry.MustRegister(c.AnswersRecorded, c.ResultsCalculated, c.SubmissionsRejected, c.OpenSessions)
	return c
}

func (c *Collector) AnswerRecorded(choice domain.Choice) {
	c.AnswersRecorded.WithLabelValues(string(choice)).Inc()
}

func (c *Collector) SubmissionRejected(_, _ int) {
	c.SubmissionsRejected.Inc()
}

func (c *Collector) ResultCalculated(result domain.Result) {
	c.ResultsCalculated.WithLabelValues(result.Band.Key).Inc()
}

func (c *Collector) SessionOpened() {
	c.OpenSessions.Inc()
}

func (c *Collector) SessionClosed() {
	c.OpenSessions.Dec()
}

// Handler exposes the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
