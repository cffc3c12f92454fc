package bus

import (
	"encoding/json"
	"net/http"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/models"
)

// handlePostEvent receives one event from a peer window and hands it to
// every subscribed handler.
func (b *Bus) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Warn().Err(err).Str("func", "handlePostEvent").Msg("malformed event payload")
		http.Error(w, "malformed event payload", http.StatusBadRequest)
		return
	}

	if event.WindowID == b.windowID {
		// Self-delivery would double-apply the event locally.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	b.handlersMu.RLock()
	handlers := b.handlers
	b.handlersMu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	w.WriteHeader(http.StatusNoContent)
}
