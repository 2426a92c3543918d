// Package api exposes the MindGarden services over JSON/HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/auth"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into v. An empty body leaves v untouched when
// allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// actorID returns the authenticated user. Routes using it sit behind
// auth.Middleware, so a missing actor is a wiring bug.
func actorID(r *http.Request) int64 {
	a, ok := auth.ActorFrom(r.Context())
	if !ok {
		panic("api: handler reached without an authenticated actor")
	}
	return a.UserID
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

func badJSON(w http.ResponseWriter, err error) {
	respond.WriteBadRequest(w, err.Error())
}
