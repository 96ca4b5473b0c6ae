package settings

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// consts
const (
	Name = "Relay"
)

// Config ...
type Config struct {
	Name    string `ignored:"true"`
	Version string `ignored:"true"`

	Environment string `envconfig:"environment" default:"development"`
	HTTPListen  string `envconfig:"HTTP_LISTEN" default:":5001"`

	RedisURI       string `envconfig:"redis_uri" default:"redis://localhost:6379/1"`
	ShadowRedisURI string `envconfig:"shadow_redis_uri" default:"redis://localhost:6379/2"`

	OpenAIAPIKey  string `envconfig:"openAi_Api_Key"`
	OpenAIBaseURI string `envconfig:"openAi_Base_uri"`
	ChatModel     string `envconfig:"chat_model" default:"gpt-4o-mini"`
	SystemPrompt  string `envconfig:"system_prompt" default:"You are a concise, helpful assistant. Use prior turns if relevant."`
	PresetFile    string `envconfig:"preset_file"`

	APIRateLimit string `envconfig:"api_rate_limit" default:"600-M"`
}

var (
	// Current 当前配置
	Current = new(Config)
)

func init() {
	if err := envconfig.Process(Name, Current); err != nil {
		log.Printf("envconfig process fail: %s", err)
	}

	Current.Name = Name
	Current.Version = version
}

// Usage 打印配置帮助
func Usage() error {
	log.Printf("ver: %s", Current.Version)
	return envconfig.Usage(Current.Name, Current)
}

// InDevelop ...
func InDevelop() bool {
	return Current.Environment == "development"
}
