package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/savagerise/storefront/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyRequestID, "req-1")

	Error(c, CodeBadRequest, "bad")

	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeBadRequest || body.Msg != "bad" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if body.Data["request_id"] != "req-1" {
		t.Fatalf("request id missing: %+v", body.Data)
	}
}

func TestErrorWithDataWrapsStructs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyRequestID, "req-2")

	ErrorWithData(c, CodeUnprocessable, "invalid", []string{"city"})

	var body struct {
		Data struct {
			RequestID string   `json:"request_id"`
			Data      []string `json:"data"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.Data.RequestID != "req-2" || len(body.Data.Data) != 1 {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(CodeInternal, "error.internal", "internal", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause")
	}
	if err.Error() != "internal (error.internal): boom" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	wrapped := fmt.Errorf("handler: %w", err)
	got, ok := AsAppError(wrapped)
	if !ok || got.Key != "error.internal" || got.Code != CodeInternal {
		t.Fatalf("expected app error in chain, got %+v", got)
	}
}
