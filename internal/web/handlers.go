package web

import (
	"fmt"
	"net/http"

	"pinatatracks/internal/config"
	"pinatatracks/internal/logger"
	"pinatatracks/internal/utils"
)

// absentGroup is forwarded to Pinata when the caller sends no group.
const absentGroup = "null"

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
		return
	}

	if s.config.PinataJWT == "" {
		s.writeError(w, http.StatusInternalServerError, CodeMissingCredential,
			fmt.Sprintf("Missing %s env var", config.CredentialEnvVar))
		return
	}

	group := absentGroup
	if query := r.URL.Query(); query.Has("group") {
		group = query.Get("group")
	}

	files, err := s.pinata.ListPublicFiles(r.Context(), group)
	if err != nil {
		status, body := classifyError(err)
		logger.Warn("Tracks request for group %q failed (%s): %v", group, body.Code, err)
		s.writeJSON(w, status, body)
		return
	}

	tracks := utils.FilesToTracks(files, s.config.GatewayURL)
	logger.Debug("Group %q: %d of %d files are audio", group, len(tracks), len(files))

	s.writeJSON(w, http.StatusOK, TracksResponse{Tracks: tracks})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	s.cors.ApplyPreflight(w.Header())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSON(w, http.StatusOK, NewSuccessResponse(HealthResponse{
		Status:               "ok",
		CredentialConfigured: s.config.PinataJWT != "",
	}))
}
