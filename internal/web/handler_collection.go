package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// collection adapts one ContentService collection to the admin API.
// T is the stored item, P the partial update accepted by update.
type collection[T any, P any] struct {
	list   func(ctx context.Context) ([]*T, error)
	get    func(ctx context.Context, id string) (*T, error)
	create func(ctx context.Context, item *T) (*T, error)
	update func(ctx context.Context, id string, patch *P) (*T, error)
	delete func(ctx context.Context, id string) error
}

type idRequest struct {
	ID string `json:"id"`
}

// registerCollection mounts GET, POST, PUT and DELETE on /api/admin/{name}.
// Writes require an admin token.
func registerCollection[T any, P any](s *Server, name string, c collection[T, P]) {
	path := "/api/admin/" + name
	s.mux.HandleFunc("GET "+path, c.handleRead(s, name))
	s.mux.Handle("POST "+path, s.requireAdmin(c.handleCreate(s, name)))
	s.mux.Handle("PUT "+path, s.requireAdmin(c.handleUpdate(s, name)))
	s.mux.Handle("DELETE "+path, s.requireAdmin(c.handleDelete(s, name)))
}

// handleRead lists the collection, or returns one item when ?id= is given.
func (c collection[T, P]) handleRead(s *Server, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
			item, err := c.get(r.Context(), id)
			if err != nil {
				s.writeServiceError(w, err, "read "+name)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"item": item})
			return
		}

		items, err := c.list(r.Context())
		if err != nil {
			s.writeServiceError(w, err, "read "+name)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (c collection[T, P]) handleCreate(s *Server, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item := new(T)
		if err := decodeJSON(w, r, item); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := c.create(r.Context(), item)
		if err != nil {
			s.writeServiceError(w, err, "create "+name+" item")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "item": created})
	}
}

// handleUpdate applies the fields present in the body to the item named by
// the body's id. Absent fields keep their stored value.
func (c collection[T, P]) handleUpdate(s *Server, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		if err := decodeJSON(w, r, &raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		var req idRequest
		patch := new(P)
		if err := json.Unmarshal(raw, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := json.Unmarshal(raw, patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		id := strings.TrimSpace(req.ID)
		if id == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}

		updated, err := c.update(r.Context(), id, patch)
		if err != nil {
			s.writeServiceError(w, err, "update "+name+" item")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "item": updated})
	}
}

// handleDelete takes the id from the body or from ?id=. Deleting an unknown
// id succeeds.
func (c collection[T, P]) handleDelete(s *Server, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" && r.ContentLength != 0 {
			var req idRequest
			if err := decodeJSON(w, r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			id = strings.TrimSpace(req.ID)
		}
		if id == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}

		if err := c.delete(r.Context(), id); err != nil {
			s.writeServiceError(w, err, "delete "+name+" item")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
