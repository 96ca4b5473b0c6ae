package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/models/aigc"
)

const (
	openaiTimeout = time.Second * 30
)

// Inference turns a full prompt sequence into a single reply, non-streaming.
type Inference interface {
	Complete(ctx context.Context, msgs aigc.Messages) (string, error)
}

// NewOpenAIChat returns an Inference backed by an OpenAI-compatible endpoint
// with a fixed model. baseURI may be empty for the default API host.
func NewOpenAIChat(apiKey, baseURI, model string) Inference {
	occ := openai.DefaultConfig(apiKey)
	if len(baseURI) > 0 {
		occ.BaseURL = baseURI
	}
	occ.HTTPClient = &http.Client{
		Timeout:   openaiTimeout,
		Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
	}
	return &openAIChat{oc: openai.NewClientWithConfig(occ), model: model}
}

type openAIChat struct {
	oc    *openai.Client
	model string
}

func (s *openAIChat) Complete(ctx context.Context, msgs aigc.Messages) (string, error) {
	ccr := openai.ChatCompletionRequest{
		Model:  s.model,
		Stream: false,
	}
	for _, m := range msgs {
		ccr.Messages = append(ccr.Messages, openai.ChatCompletionMessage{
			Role: m.Role, Content: m.Content,
		})
	}
	res, err := s.oc.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return "", err
	}
	if len(res.Choices) > 0 && len(res.Choices[0].Message.Content) > 0 {
		return res.Choices[0].Message.Content, nil
	}

	// the answer came back in an unexpected shape; degrade to its
	// stringified form instead of failing the chat
	logger().Infow("completion without usable choice", "id", res.ID, "model", res.Model)
	if b, err := json.Marshal(&res); err == nil {
		return string(b), nil
	}
	return fmt.Sprintf("%v", &res), nil
}
