package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	TokenHours  int    `mapstructure:"token_hours"`
	BcryptCost  int    `mapstructure:"bcrypt_cost"`
	AllowOrigin string `mapstructure:"allow_origin"`
}

type AssistantKeysObj struct {
	OpenAiApiKey string `mapstructure:"open_ai_api_key"`
	GeminiApiKey string `mapstructure:"gemini_api_key"`
}

type OllamaServer struct {
	URL string `mapstructure:"url"`
}

type OllamaConfig struct {
	Servers []OllamaServer `mapstructure:"servers"`
}

type EmbedderConfig struct {
	URL       string `mapstructure:"url"`
	ChunkSize int    `mapstructure:"chunk_size"`
}

// QueryEngineConfig names one retrieval engine an agent can route to and
// the description the dispatch reasoner sees for it.
type QueryEngineConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

// DatasetConfig names one structured dataset an agent can route to.
type DatasetConfig struct {
	Name        string   `mapstructure:"name"`
	Description string   `mapstructure:"description"`
	Tables      []string `mapstructure:"tables"`
}

type AgentConfig struct {
	Name         string              `mapstructure:"name"`
	LLMType      string              `mapstructure:"llm_type"`
	Capabilities []string            `mapstructure:"capabilities"`
	QueryEngines []QueryEngineConfig `mapstructure:"query_engines"`
	Datasets     []DatasetConfig     `mapstructure:"datasets"`
}

type Settings struct {
	Server        ServerConfig     `mapstructure:"server"`
	DB            DBConfig         `mapstructure:"database"`
	Redis         RedisConfig      `mapstructure:"redis"`
	Auth          AuthConfig       `mapstructure:"auth"`
	AssistantKeys AssistantKeysObj `mapstructure:"assistantKeys"`
	Ollama        OllamaConfig     `mapstructure:"ollama"`
	Embedder      EmbedderConfig   `mapstructure:"embedder"`
	Agents        []AgentConfig    `mapstructure:"agents"`
	Env           string           `mapstructure:"env"`
	Debug         bool             `mapstructure:"debug" default:"false"`
}

func Load() (*Settings, error) {
	viper.SetConfigName("config_" + genEnv())
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func genEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
