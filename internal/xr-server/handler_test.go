package xrserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	xrservice "github.com/AlexZav1327/currency-converter/internal/xr-service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, srv *httptest.Server, path string) map[string]any {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)

	defer func() {
		require.NoError(t, resp.Body.Close())
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body
}

func TestStubShapes(t *testing.T) {
	logger := logrus.StandardLogger()
	srv := httptest.NewServer(NewRouter(xrservice.New(logger), logger))
	defer srv.Close()

	t.Run("pair", func(t *testing.T) {
		body := get(t, srv, "/v6/key/pair/USD/PHP/100")
		require.Equal(t, "success", body["result"])
		require.Equal(t, 56.5, body["conversion_rate"])
		require.Equal(t, 5650.0, body["conversion_result"])
	})

	t.Run("pair invalid key", func(t *testing.T) {
		body := get(t, srv, "/v6/invalid/pair/USD/PHP/100")
		require.Equal(t, "error", body["result"])
		require.Equal(t, "invalid-key", body["error-type"])
	})

	t.Run("pair unsupported code", func(t *testing.T) {
		body := get(t, srv, "/v6/key/pair/USD/XYZ/1")
		require.Equal(t, "unsupported-code", body["error-type"])
	})

	t.Run("latest", func(t *testing.T) {
		body := get(t, srv, "/v6/key/latest/USD")
		table, ok := body["rates"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, 56.5, table["PHP"])
	})

	t.Run("fastforex", func(t *testing.T) {
		body := get(t, srv, "/fastforex/convert?from=USD&to=PHP&amount=2")
		result, ok := body["result"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, 113.0, result["PHP"])
		require.Equal(t, 56.5, result["rate"])
	})

	t.Run("fastforex bad currency", func(t *testing.T) {
		body := get(t, srv, "/fastforex/convert?from=USD&to=XYZ&amount=2")
		require.Equal(t, "Invalid currency", body["error"])
	})

	t.Run("host", func(t *testing.T) {
		body := get(t, srv, "/host/convert?from=USD&to=PHP&amount=10")
		require.Equal(t, true, body["success"])
		require.Equal(t, 565.0, body["result"])
	})

	t.Run("host invalid key", func(t *testing.T) {
		body := get(t, srv, "/host/convert?from=USD&to=PHP&amount=10&access_key=invalid")
		require.Equal(t, false, body["success"])
	})
}
