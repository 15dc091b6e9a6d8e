// Package fetch provides a fluent HTTP client with bounded retries,
// per-request timeouts, and lifecycle notifications for UI integration.
//
// Requests are configured through chained builder calls and executed with
// Send:
//
//	client := fetch.NewBuilder(log).
//		WithBaseURL("https://api.example.com").
//		WithDefaultHeader("Accept", "application/json").
//		Build()
//
//	resp, err := client.Get("/users").
//		WithLoader(true).
//		CallName("list_users").
//		Retry(2, time.Second).
//		Send(ctx)
//
// Retries
//   - Attempts run 0..retryCount inclusive; Retry(3, d) means at most 4
//     transport calls.
//   - Backoff is linear: attempt n sleeps n times the configured delay.
//   - Retries occur on network failures, timeouts, HTTP 5xx, and invalid
//     responses. Cancellation, invalid URLs, configuration mistakes, and
//     HTTP 4xx are surfaced immediately.
//
// Outcomes
//   - A *Response is returned only for 2xx statuses; anything else becomes
//     an HTTP-kind error carrying the status and raw body.
//   - All failures are typed ClientError values; branch on Kind or use the
//     IsKind and IsHTTPStatusError helpers.
//
// Notifications
//   - An injected Notifier receives loader, progress, and outcome-message
//     events per Send when the corresponding flags are enabled. The sink
//     must be safe under concurrent Send calls.
package fetch
