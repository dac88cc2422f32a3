package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/formwork/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records engine lifecycle events as Prometheus series.
type Metrics struct {
	fieldValidations *prometheus.CounterVec
	formValidations  *prometheus.CounterVec
	submissions      *prometheus.CounterVec
	submitDuration   prometheus.Histogram
}

// NewMetrics creates and registers the engine metric series on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		fieldValidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwork_field_validations_total",
				Help: "Field validation passes by outcome (stale results count as discarded)",
			},
			[]string{"field", "result"},
		),
		formValidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwork_form_validations_total",
				Help: "Whole-form validation passes by outcome",
			},
			[]string{"result"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwork_submissions_total",
				Help: "Submission attempts by outcome",
			},
			[]string{"result"},
		),
		submitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "formwork_submit_duration_seconds",
				Help: "Duration of submission attempts, validation gate included",
			},
		),
	}

	for _, c := range []prometheus.Collector{
		m.fieldValidations, m.formValidations, m.submissions, m.submitDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// FieldValidations exposes the per-field validation counter.
func (m *Metrics) FieldValidations() *prometheus.CounterVec {
	return m.fieldValidations
}

// Submissions exposes the submission attempt counter.
func (m *Metrics) Submissions() *prometheus.CounterVec {
	return m.submissions
}

// Hooks returns the lifecycle hooks feeding these metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFieldValidate: func(_ context.Context, e *domain.FieldEvent) {
			m.fieldValidations.WithLabelValues(e.Field, fieldResult(e)).Inc()
		},
		OnFormValidate: func(_ context.Context, e *domain.FormEvent) {
			m.formValidations.WithLabelValues(validity(e.Valid)).Inc()
		},
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) {
			m.submissions.WithLabelValues(submitResult(e)).Inc()
			m.submitDuration.Observe(e.Duration.Seconds())
		},
	}
}

func fieldResult(e *domain.FieldEvent) string {
	switch {
	case e.Stale:
		return "discarded"
	case e.Valid:
		return "valid"
	default:
		return "invalid"
	}
}

func validity(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

func submitResult(e *domain.SubmitEvent) string {
	switch {
	case e.Gated:
		return "gated"
	case e.Err != nil:
		return "failed"
	default:
		return "submitted"
	}
}
