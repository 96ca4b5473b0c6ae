package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcsv/go-binder/binder"
	"github.com/spf13/cast"

	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/models/aigc"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/services/stores"
)

const (
	welcomeText = "Hi, I remember our conversation. Ask me anything."

	msgFieldsRequired = "sessionId and message are required"
)

// ChatRequest is the public chat body. SessionID tolerates any JSON scalar
// and is cast to its string form; clients have been seen sending numbers.
type ChatRequest struct {
	SessionID any    `json:"sessionId"`
	Message   string `json:"message"`
}

func (s *server) postChat(w http.ResponseWriter, r *http.Request) {
	var param ChatRequest
	if err := binder.BindBody(r, &param); err != nil {
		apiFail(w, r, 400, msgFieldsRequired)
		return
	}
	csid := cast.ToString(param.SessionID)
	if len(csid) == 0 || len(param.Message) == 0 {
		apiFail(w, r, 400, msgFieldsRequired)
		return
	}

	logger().Infow("chat", "csid", csid, "size", len(param.Message), "ip", r.RemoteAddr)
	s.forward(w, r, csid, http.MethodPost, "/session/chat", M{"message": param.Message})
}

func (s *server) getHistory(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")
	s.forward(w, r, cid, http.MethodGet, "/session/history", nil)
}

// forward hands the request to the session's coordinator and passes its
// response through untouched, status included.
func (s *server) forward(w http.ResponseWriter, r *http.Request, csid, method, path string, body any) {
	co := s.reg.Resolve(csid)

	var req *http.Request
	var err error
	if body != nil {
		var b []byte
		if b, err = json.Marshal(body); err == nil {
			req, err = http.NewRequestWithContext(r.Context(), method, path, bytes.NewReader(b))
		}
	} else {
		req, err = http.NewRequestWithContext(r.Context(), method, path, nil)
	}
	if err != nil {
		apiFail(w, r, 500, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	co.ServeHTTP(w, req)
}

func (s *server) getWelcome(w http.ResponseWriter, r *http.Request) {
	msg := new(aigc.Message)
	msg.Role = aigc.RoleAssistant

	if s.preset.Welcome != nil {
		msg.Content = s.preset.Welcome.Content
	} else {
		msg.Content = welcomeText
	}

	apiOk(w, r, msg)
}

func (s *server) getIndex(w http.ResponseWriter, r *http.Request) {
	b, err := s.content.Get(r.Context(), "index.html")
	if err != nil {
		if !errors.Is(err, stores.ErrNotFound) {
			logger().Infow("load index fail", "err", err)
		}
		handlerNotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(b)
}
