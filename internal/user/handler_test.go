package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRejectsBadCredentialsWith401(t *testing.T) {
	h := NewHandler(NewService(newFakeUserRepo()))

	body := strings.NewReader(`{"email":"ghost@example.com","password":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}
