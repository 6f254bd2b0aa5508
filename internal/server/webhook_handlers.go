package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"todomaster/internal/service"
	"todomaster/internal/webhook"
)

// webhookHandler ingests signed account lifecycle events from the identity
// provider. Nothing in the body is trusted until the signature checks out.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	for _, h := range []string{webhook.HeaderID, webhook.HeaderTimestamp, webhook.HeaderSignature} {
		if r.Header.Get(h) == "" {
			respondWithError(w, http.StatusBadRequest, "No svix headers found")
			return
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read request body")
		return
	}

	if err := s.verifier.Verify(body, r.Header); err != nil {
		s.log.Warn().Err(err).Msg("webhook signature verification failed")
		respondWithError(w, http.StatusBadRequest, "Error occurred while verifying webhook")
		return
	}

	var evt service.WebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event payload")
		return
	}

	if err := s.webhookService.ProcessEvent(r.Context(), evt); err != nil {
		if errors.Is(err, service.ErrPrimaryEmailNotFound) {
			respondWithError(w, http.StatusBadRequest, "Primary email not found")
			return
		}
		// A 400 here leans on the provider's retry policy rather than
		// signalling a server fault it would give up on.
		s.log.Error().Err(err).Str("event_type", evt.Type).Msg("processing webhook event")
		respondWithError(w, http.StatusBadRequest, "Error occurred while creating user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Webhook received successfully"})
}
