package orderControllers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pastrieswithlove/bakery-api/checkout"
)

func respondWith(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondCheckoutError(c, err)
	return w
}

func TestRespondCheckoutErrorMapsValidationFailures(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, respondWith(checkout.ErrEmptyCart).Code)
	assert.Equal(t, http.StatusBadRequest, respondWith(checkout.ErrMissingFields).Code)
	assert.Equal(t, http.StatusBadRequest, respondWith(checkout.ErrInvalidDate).Code)

	w := respondWith(&checkout.NoticeError{Notice: "48 hours"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "48 hours")
}

func TestRespondCheckoutErrorLogsStorageCause(t *testing.T) {
	var captured bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&captured)
	t.Cleanup(func() { log.SetOutput(prev) })

	cause := errors.New("pq: connection refused")
	w := respondWith(&checkout.CreationError{Err: cause})

	// The customer gets the generic message, the log keeps the cause.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), cause.Error())
	assert.Contains(t, captured.String(), cause.Error())
}
