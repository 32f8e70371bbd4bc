package response

import (
	"TaylorDAM/internal/pkg/util"
	"TaylorDAM/internal/service"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)
	return w
}

func TestErrorMapping(t *testing.T) {
	var syntaxErr *stdjson.SyntaxError
	badJSON := stdjson.Unmarshal([]byte("{"), &struct{}{})
	if !errors.As(badJSON, &syntaxErr) {
		t.Fatalf("expected syntax error, got %T", badJSON)
	}

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrMediaNotFound, http.StatusNotFound},
		{"wrapped forbidden", fmt.Errorf("ctx: %w", service.ErrForbidden), http.StatusForbidden},
		{"conflict", service.ErrUserExist, http.StatusConflict},
		{"validation", &util.ValidationError{Field: "Name", Rule: "required"}, http.StatusBadRequest},
		{"json", badJSON, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := run(tc.err)
		if w.Code != tc.code {
			t.Fatalf("%s: status=%d want %d body=%s", tc.name, w.Code, tc.code, w.Body.String())
		}
	}
}
