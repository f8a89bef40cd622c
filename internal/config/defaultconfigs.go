package config

func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":3000",
		AllowedOrigins: []string{"http://localhost:5173"},
		LogLevel:       "info",
		Development:    false,
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}
