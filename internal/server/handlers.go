package server

import (
	"encoding/json"
	"net/http"

	"github.com/hodlwatch/hodlwatch/internal/common"
	"github.com/hodlwatch/hodlwatch/internal/models"
)

// handleWebhook processes one Telegram update. The delivery is always
// acknowledged with 200 — handler failures surface in the reply text and the
// logs, never in the HTTP status, so Telegram does not re-deliver.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	ack := func() {
		WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}

	var update models.Update
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.Warn().Err(err).Msg("Undecodable webhook body")
		ack()
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		s.logger.Debug().Int64("update_id", update.UpdateID).Msg("Update without text message, ignored")
		ack()
		return
	}

	chatID := update.Message.Chat.ID
	reply := s.app.Router.Reply(r.Context(), update.Message.Text)

	if err := s.app.Bot.SendMessage(r.Context(), chatID, reply); err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Reply delivery failed")
	}

	ack()
}

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
