package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"issuedAt":  {},
	"token":     {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ignored := keysToIgnore[k]
		return ignored
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, item := range v {
				if nested, ok := item.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

func executeSQLFile(t testing.TB, app *TestApp, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = app.DB.Exec(context.Background(), string(content))
	require.NoError(t, err)
}

func flushAllCache(t testing.TB, app *TestApp) {
	t.Helper()

	require.NoError(t, app.RedisClient.FlushAll(context.Background()).Err())
}

func decodeBody[T any](t testing.TB, res *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))

	return v
}

func serve(testApp *TestApp, req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)

	return rec.Result()
}
