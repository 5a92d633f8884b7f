package complaint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFail_FieldErrorsCarryDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil)
	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		h.fail(c, FieldErrors{"BookingID": "required", "Description": "max"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, map[string]string{"BookingID": "required", "Description": "max"}, body.Error.Details)
}
