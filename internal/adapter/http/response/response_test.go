package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEcho() (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var result ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestHealth(t *testing.T) {
	_, c, rec := setupEcho()

	err := Health(c, HealthResponse{Provider: "configured", Cache: "disabled"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "configured", result.Provider)
	assert.Equal(t, "disabled", result.Cache)
}

func TestErrorBuilders(t *testing.T) {
	tests := []struct {
		name       string
		write      func(echo.Context) error
		wantStatus int
		wantKind   string
		wantMsg    string
		wantDetail map[string]any
	}{
		{
			name:       "invalid body",
			write:      InvalidRequestBody,
			wantStatus: http.StatusBadRequest,
			wantKind:   "ValidationError",
			wantMsg:    MsgInvalidRequestBody,
		},
		{
			name: "validation with fields",
			write: func(c echo.Context) error {
				return ValidationError(c, map[string]string{"originCity": "originCity is required"})
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   "ValidationError",
			wantMsg:    MsgValidationFailed,
			wantDetail: map[string]any{"originCity": "originCity is required"},
		},
		{
			name: "validation with message",
			write: func(c echo.Context) error {
				return ValidationErrorWithMessage(c, "returnDate must be after departureDate")
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   "ValidationError",
			wantMsg:    "returnDate must be after departureDate",
		},
		{
			name: "resolution",
			write: func(c echo.Context) error {
				return ResolutionError(c, `no airport found for city "Atlantis"`, "Atlantis")
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   "ResolutionError",
			wantMsg:    `no airport found for city "Atlantis"`,
			wantDetail: map[string]any{"city": "Atlantis"},
		},
		{
			name:       "auth unauthorized",
			write:      func(c echo.Context) error { return AuthError(c, http.StatusUnauthorized) },
			wantStatus: http.StatusUnauthorized,
			wantKind:   "AuthError",
			wantMsg:    MsgAuthFailed,
		},
		{
			name:       "auth forbidden",
			write:      func(c echo.Context) error { return AuthError(c, http.StatusForbidden) },
			wantStatus: http.StatusForbidden,
			wantKind:   "AuthError",
			wantMsg:    MsgAuthFailed,
		},
		{
			name:       "auth unknown status falls back to 401",
			write:      func(c echo.Context) error { return AuthError(c, http.StatusBadRequest) },
			wantStatus: http.StatusUnauthorized,
			wantKind:   "AuthError",
			wantMsg:    MsgAuthFailed,
		},
		{
			name:       "bad gateway",
			write:      func(c echo.Context) error { return BadGateway(c, http.StatusInternalServerError) },
			wantStatus: http.StatusBadGateway,
			wantKind:   "ProviderError",
			wantMsg:    MsgProviderError,
			wantDetail: map[string]any{"upstreamStatus": float64(500)},
		},
		{
			name:       "service unavailable",
			write:      ServiceUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   "ServiceUnavailable",
			wantMsg:    MsgServiceUnavailable,
		},
		{
			name:       "gateway timeout",
			write:      GatewayTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantKind:   "TimeoutError",
			wantMsg:    MsgTimeout,
		},
		{
			name:       "request cancelled",
			write:      RequestCancelled,
			wantStatus: http.StatusGatewayTimeout,
			wantKind:   "TimeoutError",
			wantMsg:    MsgRequestCancelled,
		},
		{
			name:       "internal",
			write:      InternalServerError,
			wantStatus: http.StatusInternalServerError,
			wantKind:   "InternalError",
			wantMsg:    MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := setupEcho()

			require.NoError(t, tt.write(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			result := decodeError(t, rec)
			assert.Equal(t, tt.wantKind, result.Kind)
			assert.Equal(t, tt.wantMsg, result.Message)
			if tt.wantDetail == nil {
				assert.Empty(t, result.Details)
			} else {
				assert.Equal(t, tt.wantDetail, result.Details)
			}
		})
	}
}

func TestSearchResults(t *testing.T) {
	_, c, rec := setupEcho()

	data := map[string]any{"results": []any{}}
	err := SearchResults(c, data)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
}
