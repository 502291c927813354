package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "marketplace/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestHandleAppError_FieldErrorCarriesDetails(t *testing.T) {
	c, rec := newTestContext()

	err := HandleAppError(c, domainerrors.NewFieldError("rating", "Rating must be between 1 and 5"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)

	details, ok := body.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Rating must be between 1 and 5", details["rating"])
}

func TestHandleAppError_MapsPredefinedErrors(t *testing.T) {
	c, rec := newTestContext()

	err := HandleAppError(c, domainerrors.ErrOfferNotFound)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OFFER_NOT_FOUND", body.Error.Code)
}

func TestError_StripsDetailsForAuthFailures(t *testing.T) {
	c, rec := newTestContext()

	err := Error(c, http.StatusForbidden, "FORBIDDEN", "Nope", map[string]string{"secret": "leak"})
	require.NoError(t, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Error.Details)
}

func TestSuccess_WrapsDataWithRequestID(t *testing.T) {
	c, rec := newTestContext()

	err := Success(c, http.StatusCreated, map[string]string{"hello": "world"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Meta)
	assert.NotEmpty(t, body.Meta.RequestID)
}
