package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "disabled", token: "", header: "", want: http.StatusNoContent},
		{name: "missing header", token: "secret", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", token: "secret", header: "Basic secret", want: http.StatusUnauthorized},
		{name: "wrong token", token: "secret", header: "Bearer nope", want: http.StatusForbidden},
		{name: "valid", token: "secret", header: "Bearer secret", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			OperatorAuth(tt.token)(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
