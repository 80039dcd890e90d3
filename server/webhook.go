package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/websub-notify/pkg/domain"
	"github.com/umputun/websub-notify/pkg/websub"
)

// challengeHandler implements the hub's liveness handshake. The challenge
// token is echoed back verbatim, any other GET gets a plain acknowledgment.
func (s *Server) challengeHandler(w http.ResponseWriter, r *http.Request) {
	if challenge := r.URL.Query().Get("hub.challenge"); challenge != "" {
		_, _ = w.Write([]byte(challenge))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

// notificationHandler accepts content pushes from the hub. The raw body has
// to be read before anything else, signature verification needs the exact
// bytes. Dispatch runs in the background so the hub gets its 204 without
// waiting on chat-system latency.
func (s *Server) notificationHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		lgr.Printf("[WARN] failed to read notification body: %v", err)
		RenderError(w, r, errors.New("can't read request body"), http.StatusInternalServerError)
		return
	}

	if !websub.VerifySignature(body, r.Header.Get("X-Hub-Signature"), s.config.GetSecret()) {
		lgr.Printf("[WARN] rejected notification with invalid signature from %s", r.RemoteAddr)
		RenderError(w, r, errors.New("invalid signature"), http.StatusForbidden)
		return
	}

	entry, err := s.parser.Parse(body)
	if err != nil {
		lgr.Printf("[WARN] failed to parse notification: %v", err)
		RenderError(w, r, errors.New("malformed feed document"), http.StatusInternalServerError)
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent) // empty push, nothing to announce
		return
	}

	go s.dispatch(*entry)
	w.WriteHeader(http.StatusNoContent)
}

// dispatch claims the video id and announces it. Runs detached from the
// request with its own timeout. A failed announce is logged and dropped, the
// id stays claimed - a lost message is preferred over a duplicate one.
func (s *Server) dispatch(entry domain.Entry) {
	if !s.dedup.TryClaim(entry.VideoID) {
		lgr.Printf("[DEBUG] skipping already announced video %s", entry.VideoID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
	defer cancel()

	if err := s.notifier.Announce(ctx, entry); err != nil {
		lgr.Printf("[ERROR] failed to announce video %s: %v", entry.VideoID, err)
		return
	}

	if s.store != nil {
		a := &domain.Announcement{VideoID: entry.VideoID, Title: entry.Title, Link: entry.Link}
		if err := s.store.Record(ctx, a); err != nil {
			lgr.Printf("[WARN] failed to record announcement for %s: %v", entry.VideoID, err)
		}
	}
}

// announcementsHandler returns recent dispatch history, newest first
func (s *Server) announcementsHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		RenderError(w, r, errors.New("announcement history disabled"), http.StatusNotFound)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			RenderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to list announcements: %v", err)
		RenderError(w, r, errors.New("can't list announcements"), http.StatusInternalServerError)
		return
	}

	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"announcements": list,
		"count":         len(list),
	})
}
