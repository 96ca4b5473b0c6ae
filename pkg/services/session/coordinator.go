// Package session holds the per-conversation coordinators. Every session id
// resolves to exactly one Coordinator, which is the sole writer of that
// session's history and processes its requests one at a time, in arrival
// order.
package session

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/render"
	"github.com/marcsv/go-binder/binder"

	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/models/aigc"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/services/stores"
)

// Coordinator serves the internal surface the router forwards to:
//
//	POST .../chat    {message}  -> {reply}
//	GET  .../history            -> {history}
//
// The mutex makes same-session requests strictly serial; a chat never
// observes another chat of the same session mid-append.
type Coordinator struct {
	id     string
	mu     sync.Mutex
	cs     stores.Conversation
	ai     stores.Inference
	system string
}

func (c *Coordinator) GetID() string { return c.id }

func (c *Coordinator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/chat"):
		c.handleChat(w, r)
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/history"):
		c.handleHistory(w, r)
	default:
		render.Status(r, http.StatusNotFound)
		render.PlainText(w, r, "Not found")
	}
}

type chatParam struct {
	Message string `json:"message"`
}

func (c *Coordinator) handleChat(w http.ResponseWriter, r *http.Request) {
	var param chatParam
	if err := binder.BindBody(r, &param); err != nil || len(param.Message) == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, render.M{"error": "message required"})
		return
	}
	ctx := r.Context()

	history, err := c.cs.ListTurns(ctx)
	if err != nil {
		logger().Infow("list turns fail", "id", c.id, "err", err)
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}

	msgs := make(aigc.Messages, 0, len(history)+2)
	msgs = append(msgs, aigc.Message{Role: aigc.RoleSystem, Content: c.system})
	msgs = append(msgs, history.Messages()...)
	msgs = append(msgs, aigc.Message{Role: aigc.RoleUser, Content: param.Message})

	reply, err := c.ai.Complete(ctx, msgs)
	if err != nil {
		logger().Infow("complete fail", "id", c.id, "err", err)
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	logger().Debugw("completed", "id", c.id, "msgs", len(msgs), "reply", len(reply))

	// user turn first, assistant second; each append persists before the
	// next step. A failure in between leaves an unanswered user turn in
	// the history, visible to a later history read. No rollback.
	if err = c.cs.AddTurn(ctx, aigc.Turn{
		Role: aigc.RoleUser, Content: param.Message, Ts: time.Now().UnixMilli(),
	}); err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	if err = c.cs.AddTurn(ctx, aigc.Turn{
		Role: aigc.RoleAssistant, Content: reply, Ts: time.Now().UnixMilli(),
	}); err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}

	render.JSON(w, r, render.M{"reply": reply})
}

func (c *Coordinator) handleHistory(w http.ResponseWriter, r *http.Request) {
	data, err := c.cs.ListTurns(r.Context())
	if err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	if data == nil {
		data = aigc.Turns{}
	}
	render.JSON(w, r, render.M{"history": data})
}

func apiError(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, render.M{"error": err.Error()})
}
