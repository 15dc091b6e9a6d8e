package fetch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-fetch/fetch"
	"github.com/gaborage/go-fetch/fetch/fetchtest"
	"github.com/gaborage/go-fetch/logger"
	"github.com/gaborage/go-fetch/trace"
)

// sleepRecorder records backoff delays without actually waiting.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func (r *sleepRecorder) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.delays))
	copy(out, r.delays)
	return out
}

func quietLogger() logger.Logger {
	return logger.New("error", false)
}

func newStubClient(transport fetch.Transport, notifier fetch.Notifier) *fetch.Client {
	b := fetch.NewBuilder(quietLogger()).
		WithTransport(transport).
		WithSleep((&sleepRecorder{}).Sleep)
	if notifier != nil {
		b = b.WithNotifier(notifier)
	}
	return b.Build()
}

func TestSendRetriesUntilExhaustion(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Fail(fetch.NewNetworkError("connection refused", nil)))
	client := newStubClient(st, nil)

	_, err := client.Get("https://a.test/x").Retry(3, time.Millisecond).Send(context.Background())

	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindNetwork))
	assert.Equal(t, 4, st.Calls(), "retryCount=3 means 4 attempts total")
}

func TestSendNoRetryByDefault(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Fail(fetch.NewNetworkError("connection refused", nil)))
	client := newStubClient(st, nil)

	_, err := client.Get("https://a.test/x").Send(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, st.Calls())
}

func TestSendSucceedsAfterRetry(t *testing.T) {
	st := fetchtest.NewStubTransport(
		fetchtest.Respond(500, "boom"),
		fetchtest.Respond(200, `{"ok":true}`),
	)
	client := newStubClient(st, nil)

	resp, err := client.Get("https://a.test/x").Retry(3, time.Millisecond).Send(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, 2, st.Calls(), "loop stops on first success")
}

func TestSendNonRetryableKindsStopImmediately(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"cancelled", fetch.NewCancelledError(nil)},
		{"invalid url", fetch.NewInvalidURLError("::bad")},
		{"configuration", fetch.NewConfigurationError("misuse", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := fetchtest.NewStubTransport(fetchtest.Fail(tt.err))
			client := newStubClient(st, nil)

			_, err := client.Get("https://a.test/x").Retry(5, time.Millisecond).Send(context.Background())

			require.Error(t, err)
			assert.Equal(t, 1, st.Calls())
		})
	}
}

func TestSendClientErrorStatusNotRetried(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(404, "not found"))
	client := newStubClient(st, nil)

	resp, err := client.Get("https://a.test/missing").Retry(5, time.Millisecond).Send(context.Background())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, fetch.IsHTTPStatusError(err, 404))
	body, ok := fetch.HTTPBodyFromError(err)
	require.True(t, ok)
	assert.Equal(t, "not found", body)
	assert.Equal(t, 1, st.Calls())
}

func TestSendServerErrorStatusRetried(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(503, "unavailable"))
	client := newStubClient(st, nil)

	_, err := client.Get("https://a.test/x").Retry(2, time.Millisecond).Send(context.Background())

	require.Error(t, err)
	assert.True(t, fetch.IsHTTPStatusError(err, 503))
	assert.Equal(t, 3, st.Calls())
}

func TestSendLinearBackoffSchedule(t *testing.T) {
	rec := &sleepRecorder{}
	st := fetchtest.NewStubTransport(fetchtest.Fail(fetch.NewNetworkError("unreachable", nil)))
	client := fetch.NewBuilder(quietLogger()).
		WithBaseURL("https://api.test").
		WithTransport(st).
		WithSleep(rec.Sleep).
		Build()

	_, err := client.Get("/users").Retry(2, 100*time.Millisecond).Send(context.Background())

	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindNetwork))
	assert.Equal(t, 3, st.Calls())
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, rec.Delays())
	assert.Equal(t, "https://api.test/users", st.LastRequest().URL)
}

func TestSendReturnsLastObservedError(t *testing.T) {
	st := fetchtest.NewStubTransport(
		fetchtest.Fail(fetch.NewNetworkError("first", nil)),
		fetchtest.Fail(fetch.NewTimeoutError("second", 0)),
	)
	client := newStubClient(st, nil)

	_, err := client.Get("https://a.test/x").Retry(1, time.Millisecond).Send(context.Background())

	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindTimeout))
}

func TestSendCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	st := &cancellingTransport{cancel: cancel}
	client := fetch.NewBuilder(quietLogger()).
		WithTransport(st).
		Build()

	_, err := client.Get("https://a.test/x").Retry(3, time.Minute).Send(ctx)

	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindCancelled))
	assert.Equal(t, 1, st.calls, "no attempt after cancellation")
}

// cancellingTransport fails the request and cancels the context, so the
// following backoff sleep observes a dead context.
type cancellingTransport struct {
	cancel context.CancelFunc
	calls  int
}

func (c *cancellingTransport) RoundTrip(_ context.Context, _ *fetch.TransportRequest) (*fetch.TransportResponse, error) {
	c.calls++
	c.cancel()
	return nil, fetch.NewNetworkError("unreachable", nil)
}

func TestSendEmptyURL(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(200, "ok"))
	client := newStubClient(st, nil)

	_, err := client.Get("").Send(context.Background())

	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindInvalidURL))
	assert.Equal(t, 0, st.Calls())
}

func TestSendOutOfRangeStatus(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(42, ""))
	client := newStubClient(st, nil)

	_, err := client.Get("https://a.test/x").Send(context.Background())

	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindInvalidResponse))
}

func TestSendConsumesBuilder(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(200, "ok"))
	client := newStubClient(st, nil)

	b := client.Get("https://a.test/x")
	_, err := b.Send(context.Background())
	require.NoError(t, err)

	_, err = b.Send(context.Background())
	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindConfiguration))
	assert.Equal(t, 1, st.Calls())
}

func TestSendFormConfigurationError(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(200, "ok"))
	client := newStubClient(st, nil)

	_, err := client.Post("https://a.test/upload").
		Form(fetch.NewForm().Field("", "broken")).
		Send(context.Background())

	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindConfiguration))
	assert.Equal(t, 0, st.Calls(), "short-circuits before any network activity")
}

func TestSendSuccessEnvelope(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.RespondHeaders(201, `{"id":7}`, map[string]string{
		"Content-Type": "application/json",
	}))
	client := newStubClient(st, nil)

	resp, err := client.Post("https://a.test/users").
		CallName("create_user").
		Send(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 201, resp.Status)
	assert.Equal(t, "https://a.test/users", resp.URL)
	assert.Equal(t, "create_user", resp.CallName)
	assert.True(t, resp.IsSuccess())

	contentType, ok := resp.Header("content-type")
	require.True(t, ok)
	assert.Equal(t, "application/json", contentType)
}

func TestSendErrorEchoesCallName(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(500, "boom"))
	client := newStubClient(st, nil)

	_, err := client.Get("https://a.test/x").CallName("flaky_call").Send(context.Background())

	require.Error(t, err)
	assert.Equal(t, "flaky_call", fetch.CallNameFromError(err))
}

func TestSendInjectsRequestIDHeader(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(200, "ok"))
	client := newStubClient(st, nil)

	t.Run("generated when absent", func(t *testing.T) {
		_, err := client.Get("https://a.test/x").Send(context.Background())
		require.NoError(t, err)

		id, ok := st.LastRequest().Headers.Get(trace.HeaderRequestID)
		require.True(t, ok)
		assert.NotEmpty(t, id)
	})

	t.Run("taken from context", func(t *testing.T) {
		ctx := trace.WithRequestID(context.Background(), "ctx-id-1")
		_, err := client.Get("https://a.test/x").Send(ctx)
		require.NoError(t, err)

		id, _ := st.LastRequest().Headers.Get(trace.HeaderRequestID)
		assert.Equal(t, "ctx-id-1", id)
	})

	t.Run("explicit header wins", func(t *testing.T) {
		_, err := client.Get("https://a.test/x").
			Header(trace.HeaderRequestID, "explicit-id").
			Send(context.Background())
		require.NoError(t, err)

		id, _ := st.LastRequest().Headers.Get(trace.HeaderRequestID)
		assert.Equal(t, "explicit-id", id)
	})
}

func TestSendStableRequestIDAcrossRetries(t *testing.T) {
	st := fetchtest.NewStubTransport(
		fetchtest.Respond(500, "boom"),
		fetchtest.Respond(200, "ok"),
	)
	client := newStubClient(st, nil)

	_, err := client.Get("https://a.test/x").Retry(1, time.Millisecond).Send(context.Background())
	require.NoError(t, err)

	reqs := st.Requests()
	require.Len(t, reqs, 2)
	first, _ := reqs[0].Headers.Get(trace.HeaderRequestID)
	second, _ := reqs[1].Headers.Get(trace.HeaderRequestID)
	assert.Equal(t, first, second)
}

func TestSendMultipartContentType(t *testing.T) {
	st := fetchtest.NewStubTransport(fetchtest.Respond(200, "ok"))
	client := newStubClient(st, nil)

	_, err := client.Post("https://a.test/upload").
		Header("Content-Type", "application/json").
		Form(fetch.NewForm().Field("a", "b")).
		Send(context.Background())
	require.NoError(t, err)

	contentType, ok := st.LastRequest().Headers.Get("Content-Type")
	require.True(t, ok)
	assert.Contains(t, contentType, "multipart/form-data; boundary=")
}
