package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"talentmatch-backend/internal/delivery/http/middleware"
	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(handler gin.HandlerFunc) (*httptest.ResponseRecorder, response.Response) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/boom", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorHandler(t *testing.T) {
	t.Run("Should keep message and category of an AppError", func(t *testing.T) {
		w, body := performRequest(func(c *gin.Context) {
			c.Error(apperror.NotFound("Consultant introuvable"))
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, body.Success)
		assert.Equal(t, "Consultant introuvable", body.Message)
	})

	t.Run("Should collapse bare errors to the generic banner", func(t *testing.T) {
		w, body := performRequest(func(c *gin.Context) {
			c.Error(errors.New("pq: connection reset"))
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperror.MessageUnexpected, body.Message)
		assert.NotContains(t, body.Message, "pq:")
	})

	t.Run("Should map an already written 502 to the unavailability banner", func(t *testing.T) {
		w, body := performRequest(func(c *gin.Context) {
			c.Status(http.StatusBadGateway)
			c.Error(errors.New("upstream refused"))
		})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, apperror.MessageServiceUnavailable, body.Message)

		require.NotNil(t, body.Error)
		detail := body.Error.(map[string]interface{})
		assert.Equal(t, string(apperror.CategoryServiceUnavailable), detail["category"])
	})

	t.Run("Should map an already written 503 to the maintenance banner", func(t *testing.T) {
		w, body := performRequest(func(c *gin.Context) {
			c.Status(http.StatusServiceUnavailable)
			c.Error(errors.New("draining"))
		})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, apperror.MessageMaintenance, body.Message)
	})

	t.Run("Should do nothing without errors", func(t *testing.T) {
		w, _ := performRequest(func(c *gin.Context) {
			response.Success(c, http.StatusOK, "ok", nil)
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
