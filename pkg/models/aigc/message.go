package aigc

type Message struct {
	Role    string `json:"role,omitempty" yaml:"role,omitempty"`
	Content string `json:"content" yaml:"content"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
}

type Messages []Message

type Preset struct {
	Welcome      *Message `json:"welcome,omitempty" yaml:"welcome,omitempty"`
	SystemPrompt string   `json:"systemPrompt,omitempty" yaml:"systemPrompt,omitempty"`
	Model        string   `json:"model,omitempty" yaml:"model,omitempty"`
}
