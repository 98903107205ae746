package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	fieldgate "github.com/fieldgate/fieldgate"
)

// TokenBinder attaches a raw bearer token to the request context so the
// gateway's principal resolver can consume it. token.Bind satisfies this.
type TokenBinder func(ctx context.Context, token string) context.Context

type methodRequest struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
}

type methodResponse struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Methods returns an HTTP handler serving POST method calls through mux.
// bind may be nil when principals are resolved by other means.
func Methods(mux *fieldgate.Mux, bind TokenBinder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mux == nil {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req methodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Method == "" {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		ctx := r.Context()
		if bind != nil {
			if tok, ok := bearerToken(r.Header.Get("Authorization")); ok {
				ctx = bind(ctx, tok)
			}
		}

		result, err := mux.Call(ctx, req.Method, req.Params...)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(methodResponse{Result: result})
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, fieldgate.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, fieldgate.ErrFieldNotAllowed), errors.Is(err, fieldgate.ErrDeleteDenied):
		return http.StatusForbidden
	case errors.Is(err, fieldgate.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, fieldgate.ErrMethodNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(methodResponse{Error: message})
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
