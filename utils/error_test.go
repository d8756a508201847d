package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{ValidationError{Message: "Missing required fields"}, http.StatusBadRequest, "Missing required fields"},
		{ConflictError{Message: "Time slot is already booked"}, http.StatusConflict, "Time slot is already booked"},
		{NotFoundError{Message: "Booking not found"}, http.StatusNotFound, "Booking not found"},
		{UnauthorizedError{Message: "Invalid token"}, http.StatusUnauthorized, "Invalid token"},
		{ForbiddenError{Message: "Not allowed"}, http.StatusForbidden, "Not allowed"},
		{NewBackendError("Failed to load", errors.New("timeout")), http.StatusInternalServerError, "Failed to load"},
		{fmt.Errorf("wrapped: %w", NotFoundError{Message: "gone"}), http.StatusNotFound, "gone"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		status, message := StatusFor(tc.err)
		if status != tc.status || message != tc.message {
			t.Fatalf("StatusFor(%v) = %d %q, want %d %q", tc.err, status, message, tc.status, tc.message)
		}
	}
}

func TestRespondErrorHidesBackendCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, zap.NewNop(), NewBackendError("Failed to create booking", errors.New("dial tcp: refused")))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != "Failed to create booking" {
		t.Fatalf("unexpected body %v", body)
	}
}
