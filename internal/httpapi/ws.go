package httpapi

import (
	"net/http"
	"sync"

	"github.com/jpl-au/shortkey/internal/handler"
)

// sessions counts live connections so shutdown can drain their usage
// writes.
type sessions struct {
	wg sync.WaitGroup
}

func (ss *sessions) add() { ss.wg.Add(1) }

func (ss *sessions) done(h *handler.Handler) {
	h.Wait()
	ss.wg.Done()
}

func (ss *sessions) wait() { ss.wg.Wait() }

// handleWS runs the message protocol over one connection. Each text frame
// is a handler.Message and is answered with one handler.Response. The
// keystroke buffer lives as long as the connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	h := handler.New(s.store, s.dispatch, s.log)
	s.sessions.add()
	defer s.sessions.done(h)

	ctx := r.Context()
	for {
		var msg handler.Message
		if err := conn.ReadJSON(&msg); err != nil {
			// Client went away.
			return
		}
		resp, err := h.Handle(ctx, msg)
		if err != nil {
			s.log.Debug("websocket message", "name", msg.Name, "error", err)
		}
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}
