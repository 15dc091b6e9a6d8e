package fetch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-fetch/logger"
)

func testClient() *Client {
	return NewClient(logger.New("error", false))
}

func TestBuilderChaining(t *testing.T) {
	b := testClient().Get("/users").
		Header("Accept", "application/json").
		WithLoader(true).
		WithProgress(true).
		WithNotifications(true).
		CallName("list_users").
		Timeout(5 * time.Second).
		Retry(2, 100*time.Millisecond)

	cfg := b.Config()
	assert.Equal(t, "GET", cfg.Method)
	assert.Equal(t, "/users", cfg.URL)
	assert.True(t, cfg.WithLoader)
	assert.True(t, cfg.WithProgress)
	assert.True(t, cfg.WithNotifications)
	assert.Equal(t, "list_users", cfg.CallName)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.RetryCount)
	assert.Equal(t, 100*time.Millisecond, cfg.RetryDelay)

	v, ok := cfg.Headers.Get("accept")
	require.True(t, ok)
	assert.Equal(t, "application/json", v)
}

func TestBuilderMethods(t *testing.T) {
	c := testClient()
	tests := []struct {
		method  string
		builder *RequestBuilder
	}{
		{"GET", c.Get("/x")},
		{"POST", c.Post("/x")},
		{"PUT", c.Put("/x")},
		{"DELETE", c.Delete("/x")},
		{"PATCH", c.Patch("/x")},
		{"HEAD", c.Head("/x")},
		{"OPTIONS", c.Options("/x")},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.method, tt.builder.Config().Method)
		})
	}
}

func TestBuilderJSON(t *testing.T) {
	type user struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	in := user{Name: "John", Age: 42}

	b, err := testClient().Post("/users").JSON(in)
	require.NoError(t, err)

	cfg := b.Config()
	contentType, ok := cfg.Headers.Get("content-type")
	require.True(t, ok)
	assert.Equal(t, "application/json", contentType)

	body, ok := cfg.Body.(jsonBody)
	require.True(t, ok)

	// Round-trip law: decoding the encoded body yields the input.
	var out user
	require.NoError(t, json.Unmarshal(body.data, &out))
	assert.Equal(t, in, out)
}

func TestBuilderJSONFailure(t *testing.T) {
	// Channels are not JSON-serializable.
	b, err := testClient().Post("/users").JSON(make(chan int))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindSerialization))

	// Neither headers nor body were touched.
	cfg := b.Config()
	assert.False(t, cfg.Headers.Has("Content-Type"))
	assert.Equal(t, NoBody, cfg.Body)
}

func TestBodyVariantExclusivity(t *testing.T) {
	b := testClient().Post("/x").Text("first")
	_, ok := b.Config().Body.(textBody)
	require.True(t, ok)

	b.Binary([]byte{1, 2})
	_, ok = b.Config().Body.(binaryBody)
	require.True(t, ok)

	b.Form(NewForm().Field("a", "b"))
	_, ok = b.Config().Body.(formBody)
	require.True(t, ok)

	_, err := b.JSON(map[string]string{"k": "v"})
	require.NoError(t, err)
	_, ok = b.Config().Body.(jsonBody)
	assert.True(t, ok)
}

func TestBuilderTimeouts(t *testing.T) {
	b := testClient().Get("/x")
	assert.Equal(t, DefaultTimeout, b.Config().Timeout)

	b.Timeout(time.Second)
	assert.Equal(t, time.Second, b.Config().Timeout)

	b.NoTimeout()
	assert.Equal(t, time.Duration(0), b.Config().Timeout)
}

func TestBuilderHeadersMap(t *testing.T) {
	b := testClient().Get("/x").
		Header("Accept", "text/plain").
		Headers(map[string]string{"ACCEPT": "application/json", "X-Other": "1"})

	cfg := b.Config()
	v, _ := cfg.Headers.Get("accept")
	assert.Equal(t, "application/json", v)
	assert.True(t, cfg.Headers.Has("X-Other"))
}

func TestConfigIsACopy(t *testing.T) {
	b := testClient().Get("/x").Header("A", "1")

	cfg := b.Config()
	cfg.Headers.Set("A", "2")

	v, _ := b.Config().Headers.Get("A")
	assert.Equal(t, "1", v)
}
