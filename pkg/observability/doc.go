/*
Package observability turns engine lifecycle events into Prometheus
metrics.

Metrics wraps a registerer and implements the hook wiring for a Form:

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal(err)
	}
	form := formwork.New(formwork.WithLifecycleHooks(metrics.Hooks()))

Exported series:

  - formwork_field_validations_total{field, result}
  - formwork_form_validations_total{result}
  - formwork_submissions_total{result}
  - formwork_submit_duration_seconds
*/
package observability
