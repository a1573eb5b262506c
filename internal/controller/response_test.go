package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name" binding:"required,max=5"`
	Kind  string   `json:"kind" binding:"omitempty,oneof=a b"`
	Items []string `json:"items" binding:"required,min=1"`
}

func serve(t *testing.T, handler gin.HandlerFunc, body string) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()
	r := gin.New()
	r.POST("/x/:id", handler)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x/7", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestBadRequestListsFields(t *testing.T) {
	code, resp := serve(t, func(ctx *gin.Context) {
		var s sample
		if err := ctx.ShouldBindJSON(&s); err != nil {
			BadRequest(ctx, err)
		}
	}, `{"name":"too long","kind":"c","items":[]}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, validationFailed, resp.Error)
	require.Len(t, resp.Errors, 3)
	assert.Equal(t, dto.FieldError{Field: "name", Message: "must be at most 5 characters"}, resp.Errors[0])
	assert.Equal(t, dto.FieldError{Field: "kind", Message: "must be one of: a, b"}, resp.Errors[1])
	assert.Equal(t, dto.FieldError{Field: "items", Message: "must contain at least 1 item(s)"}, resp.Errors[2])
}

func TestBadRequestMalformedBody(t *testing.T) {
	code, resp := serve(t, func(ctx *gin.Context) {
		var s sample
		if err := ctx.ShouldBindJSON(&s); err != nil {
			BadRequest(ctx, err)
		}
	}, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "body", resp.Errors[0].Field)
}

func TestFailHidesInternalErrorsInProduction(t *testing.T) {
	internal := errors.New("pq: relation \"answers\" does not exist")

	code, resp := serve(t, func(ctx *gin.Context) { Fail(ctx, internal, true) }, "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", resp.Error)
	assert.False(t, resp.Success)

	code, resp = serve(t, func(ctx *gin.Context) { Fail(ctx, internal, false) }, "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, resp.Error, "does not exist")

	notFound := apperror.E(apperror.CodeNotFound, "op", "interview not found", apperror.ErrNotFound)
	code, resp = serve(t, func(ctx *gin.Context) { Fail(ctx, notFound, true) }, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "interview not found", resp.Error)
}

func TestIDParam(t *testing.T) {
	var got uint
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x/:id", func(ctx *gin.Context) {
		if id, ok := IDParam(ctx, "id"); ok {
			got = id
			ctx.Status(http.StatusNoContent)
		}
	})

	for path, want := range map[string]int{"/x/12": http.StatusNoContent, "/x/0": http.StatusBadRequest, "/x/-3": http.StatusBadRequest, "/x/abc": http.StatusBadRequest} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
	assert.Equal(t, uint(12), got)
}
