package fetch_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-fetch/fetch"
)

func newHelperClient(t *testing.T, handler http.HandlerFunc) *fetch.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return fetch.NewBuilder(quietLogger()).WithBaseURL(srv.URL).Build()
}

func TestGetJSON(t *testing.T) {
	client := newHelperClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		fmt.Fprint(w, `{"id":7,"name":"bolt"}`)
	})

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, fetch.GetJSON(context.Background(), client, "/parts/7", &out))
	assert.Equal(t, 7, out.ID)
	assert.Equal(t, "bolt", out.Name)
}

func TestGetJSONPropagatesHTTPError(t *testing.T) {
	client := newHelperClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	var out map[string]any
	err := fetch.GetJSON(context.Background(), client, "/parts/404", &out)
	require.Error(t, err)
	assert.True(t, fetch.IsKind(err, fetch.KindHTTP))
	status, ok := fetch.HTTPStatusFromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostJSON(t *testing.T) {
	client := newHelperClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"echo":%q}`, in["name"])
	})

	var out struct {
		Echo string `json:"echo"`
	}
	err := fetch.PostJSON(context.Background(), client, "/parts", map[string]string{"name": "nut"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "nut", out.Echo)
}

func TestPostJSONNilOutSkipsDecode(t *testing.T) {
	client := newHelperClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	})

	err := fetch.PostJSON(context.Background(), client, "/parts", map[string]string{"name": "nut"}, nil)
	require.NoError(t, err)
}

func TestUploadFile(t *testing.T) {
	client := newHelperClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "report.csv", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n", string(data))
		w.WriteHeader(http.StatusCreated)
	})

	resp, err := fetch.UploadFile(context.Background(), client, "/files", "report.csv", "text/csv", []byte("a,b\n1,2\n"), false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestUploadFileContentType(t *testing.T) {
	client := newHelperClient(t, func(w http.ResponseWriter, r *http.Request) {
		mediaType := r.Header.Get("Content-Type")
		assert.True(t, strings.HasPrefix(mediaType, "multipart/form-data"), "got %q", mediaType)

		reader := multipart.NewReader(r.Body, strings.TrimPrefix(mediaType, "multipart/form-data; boundary="))
		part, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "text/csv", part.Header.Get("Content-Type"))
	})

	_, err := fetch.UploadFile(context.Background(), client, "/files", "report.csv", "text/csv", []byte("x"), false)
	require.NoError(t, err)
}

func TestDownloadBytes(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}
	client := newHelperClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(payload)
	})

	data, err := fetch.DownloadBytes(context.Background(), client, "/blob")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}
