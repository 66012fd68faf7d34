// Package httpsend is the default oauth.Sender. It executes provider calls
// with net/http behind a circuit breaker and records per-call Prometheus
// metrics.
//
// Request parameters always travel in the query string and the body is left
// empty, whatever the verb. Non-2xx responses are returned as responses, not
// errors, so the caller can inspect the status and body. 5xx responses and
// transport failures count against the breaker; once it opens, Send fails fast
// with ErrCircuitOpen until the breaker timeout elapses.
//
//	metrics := httpsend.NewMetrics("sociallogin")
//	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
//		return err
//	}
//	sender := httpsend.New(
//		httpsend.WithConfig(cfg),
//		httpsend.WithMetrics(metrics),
//		httpsend.WithLogger(log),
//	)
//
// Only the redacted request URL is ever logged. Response bodies are not.
package httpsend
