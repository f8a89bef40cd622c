package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile = "chessengine/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// WebSocketConfig holds buffer sizes for upgraded connections.
type WebSocketConfig struct {
	ReadBufferSize  int `json:"read_buffer_size"`
	WriteBufferSize int `json:"write_buffer_size"`
}

type Config struct {
	ListenAddr     string          `json:"listen_addr"`
	AllowedOrigins []string        `json:"allowed_origins"`
	LogLevel       string          `json:"log_level"`
	Development    bool            `json:"development"`
	WebSocket      WebSocketConfig `json:"websocket"`
}

// InitConfig starts from DefaultConfig, overlays the user's config file when
// one exists and finally applies environment overrides.
func InitConfig() (*Config, error) {
	config := DefaultConfig()
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, config); err != nil {
			return nil, err
		}
	}
	config.applyEnv()
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if addr := os.Getenv("CHESS_LISTEN_ADDR"); addr != "" {
		c.ListenAddr = addr
	}
	if level := os.Getenv("CHESS_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return &InvalidConfig{"listen_addr must not be empty"}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log_level %q", c.LogLevel)}
	}
	if c.WebSocket.ReadBufferSize <= 0 || c.WebSocket.WriteBufferSize <= 0 {
		return &InvalidConfig{"websocket buffer sizes must be positive"}
	}
	return nil
}

// Origins is the comma separated form the CORS middleware expects.
func (c *Config) Origins() string {
	return strings.Join(c.AllowedOrigins, ", ")
}

// Logger builds the process logger for the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
