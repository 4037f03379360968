// Package patchserver is the HTTP front end spec.md §1 names as the
// engine's intended consumer: "an automation agent that produces patches
// ... and needs them applied deterministically." It accepts an inline
// file snapshot and a patch body, applies it via patchvfs, and persists
// an audit record of the outcome.
//
// Grounded on thehowl-diffy's pkg/http.Server (same chi.Router +
// middleware shape, same "s.e(handler)" error-to-status adapter) and
// pkg/db.DB (see db.go), adapted from diffy's upload/diff-view domain to
// this one's apply-and-record domain.
package patchserver

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/multierr"

	"github.com/codalotl/codalotl/internal/patchdiff"
	"github.com/codalotl/codalotl/internal/patchengine"
	"github.com/codalotl/codalotl/internal/patchparser"
	"github.com/codalotl/codalotl/internal/patchvfs"
)

// Server is the HTTP front end. DB may be nil, in which case history is
// not persisted and GET /history/{id} always 404s.
type Server struct {
	DB *DB
}

// Router builds the chi.Router for Server, wired with the same
// logging/recovery/timeout middleware stack thehowl-diffy's Router uses.
func (s *Server) Router() chi.Router {
	rt := chi.NewRouter()
	rt.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)
	rt.Post("/apply", s.e(s.apply))
	rt.Get("/history/{id}", s.e(s.history))
	return rt
}

// applyRequest is the JSON body of POST /apply: an inline snapshot of
// file contents keyed by path, and the patch envelope to apply to it.
type applyRequest struct {
	Files map[string]string `json:"files"`
	Patch string            `json:"patch"`
}

// applyResponse is the JSON body returned from POST /apply.
type applyResponse struct {
	ID      string              `json:"id"`
	Files   map[string]string   `json:"files"`
	Changes []patchvfs.FileChange `json:"changes"`
	Errors  []string            `json:"errors,omitempty"`
}

// e adapts a handler that can fail into a plain http.HandlerFunc, logging
// server-side failures and mapping known error classes to HTTP status
// codes, the way thehowl-diffy's Server.e does.
func (s *Server) e(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			status := statusFor(err)
			if status >= 500 {
				log.Printf("request error: %v", err)
			}
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var (
	errBadRequest = errors.New("bad request")
	errNotFound   = errors.New("not found")
)

// apply decodes an applyRequest, runs patchvfs.Apply over the inline
// snapshot, and persists an audit record keyed by a fresh request id. A
// per-file conflict/ambiguity outcome does not abort the whole request;
// patchvfs.Apply itself is whole-patch-atomic (spec §7's "parsing errors
// short-circuit the entire operation"), so the only place multiple
// independent failures can accumulate in one response is the
// conflict-diagnostic enrichment below, which multierr.Combine aggregates
// across hunks without changing patchvfs's own all-or-nothing contract
// for the snapshot it returns.
func (s *Server) apply(w http.ResponseWriter, r *http.Request) error {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errors.Join(errBadRequest, err)
	}

	id, err := newRequestID()
	if err != nil {
		return err
	}

	snapshot := patchvfs.Snapshot(req.Files)
	updated, changes, applyErr := patchvfs.Apply(snapshot, req.Patch)

	app := Application{ID: id, CreatedAt: time.Now()}
	resp := applyResponse{ID: id}

	if applyErr != nil {
		diagErr := multierr.Append(applyErr, diagnoseConflicts(snapshot, req.Patch, applyErr))
		app.Failed = true
		app.Outcomes = []FileOutcome{{Error: diagErr.Error()}}
		resp.Errors = []string{diagErr.Error()}
	} else {
		resp.Files = updated
		resp.Changes = changes
		for _, ch := range changes {
			app.Outcomes = append(app.Outcomes, FileOutcome{Path: ch.Path, Kind: ch.Kind.String()})
		}
	}

	if s.DB != nil {
		if err := s.DB.PutApplication(app); err != nil {
			return err
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if applyErr != nil {
		w.WriteHeader(http.StatusConflict)
	}
	return json.NewEncoder(w).Encode(resp)
}

// diagnoseConflicts enriches a bare patchvfs conflict/ambiguity error with
// patchdiff.Nearest's nearest-match explanation, for any Update action in
// the patch whose hunks fail to locate. Parse errors here are swallowed:
// if the patch itself is unparseable, applyErr (already a format error)
// is diagnostic enough.
func diagnoseConflicts(snapshot patchvfs.Snapshot, patch string, applyErr error) error {
	if !patchvfs.IsConflict(applyErr) && !patchvfs.IsAmbiguous(applyErr) {
		return nil
	}
	doc, err := patchparser.Parse(patch)
	if err != nil {
		return nil
	}
	var diag error
	for _, action := range doc.Actions {
		if action.Kind != patchparser.ActionUpdate {
			continue
		}
		content, ok := snapshot[action.Path]
		if !ok {
			continue
		}
		file := splitLines(content)
		for _, h := range action.Hunks {
			if len(h.DelLines()) == 0 {
				continue
			}
			if _, err := patchengine.Apply(file, []patchengine.Hunk{h}, patchengine.ModeLenient); err != nil {
				diag = multierr.Append(diag, errors.New(action.Path+": "+patchdiff.Nearest(file, h)))
			}
		}
	}
	return diag
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	n := len(content)
	if n > 0 && content[n-1] == '\n' {
		content = content[:n-1]
	}
	var out []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			out = append(out, content[start:i])
			start = i + 1
		}
	}
	out = append(out, content[start:])
	return out
}

// history serves the persisted audit record for a past POST /apply call.
func (s *Server) history(w http.ResponseWriter, r *http.Request) error {
	if s.DB == nil {
		return errNotFound
	}
	id := chi.URLParam(r, "id")
	app, ok, err := s.DB.GetApplication(id)
	if err != nil {
		return err
	}
	if !ok {
		return errNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(app)
}

func newRequestID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
