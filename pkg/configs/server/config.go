package server

import (
	"time"
)

type ServerConfig struct {
	port     int32
	database string
	media    *MediaConfig
	token    *TokenConfig
}

func (c *ServerConfig) Port() int32 {
	return c.port
}

// Connection string for database.
func (c *ServerConfig) Database() string {
	return c.database
}

func (c *ServerConfig) Media() *MediaConfig {
	return c.media
}

func (c *ServerConfig) Token() *TokenConfig {
	return c.token
}

// Configuration for uploaded media files.
//
// to get `MediaConfig` instance, use `ServerConfigMarshall.TrySeal()` .
type MediaConfig struct {
	root string
	url  string
}

// Directory where uploaded files are stored.
func (m *MediaConfig) Root() string {
	return m.root
}

// URL path prefix under which stored files are served. default = "/media/"
func (m *MediaConfig) URL() string {
	return m.url
}

// Configuration for access tokens.
type TokenConfig struct {
	secret string
	ttl    time.Duration
}

// Shared secret signing access tokens.
func (t *TokenConfig) Secret() string {
	return t.secret
}

// How long an issued token stays valid. default = 24h
func (t *TokenConfig) TTL() time.Duration {
	return t.ttl
}
