package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/tesabel/mobileAppDevTeam25/middleware"
	"github.com/tesabel/mobileAppDevTeam25/services"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// StartSession runs the date gate. The client calls this once after
// sign-in or app resume; calling it again the same day changes nothing.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	// Rollover fans out across all habits, so give it more room than a
	// point request.
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	greeting, err := h.sessionService.Start(ctx, uid)
	if err != nil {
		if errors.Is(err, services.ErrUserNotRegistered) {
			respondWithError(w, http.StatusNotFound, "User not registered")
			return
		}
		log.Printf("StartSession Handler: %v", err)
		middleware.CountRollover("error")
		respondWithError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	if greeting.Reconciled {
		middleware.CountRollover("ok")
	}
	respondWithJSON(w, http.StatusOK, greeting)
}
