// Package health runs named dependency checks in parallel and aggregates them
// into a single report.
//
//	report := health.Run(ctx, health.Checks{
//		"transport": mailer.Verify,
//	}, health.WithTimeout(5*time.Second))
//	if !report.Healthy() {
//		return report.Err()
//	}
//
// The report marshals to JSON for operator tooling.
package health
