package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app/commands"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app/queries"
)

type Server struct {
	cmdBus   app.CommandBus
	queryBus app.QueryBus
}

func NewServer(cmdBus app.CommandBus, queryBus app.QueryBus) *Server {
	return &Server{
		cmdBus:   cmdBus,
		queryBus: queryBus,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// ExportRecord renders the posted record bundle as an RDF document in the
// requested format.
func (s *Server) ExportRecord(w http.ResponseWriter, r *http.Request) {
	var in ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	cmd := commands.ExportRecordCommand{
		RecordID: chi.URLParam(r, "recordID"),
		Bundle:   in.Bundle(),
		Format:   rdf.Format(r.URL.Query().Get("format")),
	}

	result, err := s.cmdBus.ExportRecord(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, rdf.ErrUnsupportedFormat):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, rdf.ErrMalformedCode):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("X-Export-Id", result.ExportID)
	_, _ = w.Write([]byte(result.Document))
}

// ListFormats reports the supported serialization formats.
func (s *Server) ListFormats(w http.ResponseWriter, r *http.Request) {
	result, err := s.queryBus.ListFormats(r.Context(), queries.ListFormatsQuery{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// GetHealthStatus answers liveness probes.
func (s *Server) GetHealthStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
