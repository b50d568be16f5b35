package server

import (
	"time"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
//
// All types named `pkg/configs/server.XxxMarshall` are `Marshalled[*Xxx]` .
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type ServerConfigMarshall struct {
	Port     int32                `yaml:"port"`
	Database string               `yaml:"database"`
	Media    *MediaConfigMarshall `yaml:"media"`
	Token    *TokenConfigMarshall `yaml:"token"`
}

var _ Marshalled[*ServerConfig] = &ServerConfigMarshall{}

func (s *ServerConfigMarshall) trySeal(path string) *ServerConfig {
	return &ServerConfig{
		port:     required(s.Port, path+".port"),
		database: required(s.Database, path+".database"),
		media:    nonnil(s.Media, path+".media").trySeal(path + ".media"),
		token:    nonnil(s.Token, path+".token").trySeal(path + ".token"),
	}
}

type MediaConfigMarshall struct {
	Root string `yaml:"root"`
	URL  string `yaml:"url,omitempty"`
}

func (m *MediaConfigMarshall) trySeal(path string) *MediaConfig {
	url := m.URL
	if url == "" {
		url = "/media/"
	}
	return &MediaConfig{
		root: required(m.Root, path+".root"),
		url:  url,
	}
}

type TokenConfigMarshall struct {
	Secret   string `yaml:"secret"`
	TTLHours int    `yaml:"ttlHours,omitempty"`
}

func (t *TokenConfigMarshall) trySeal(path string) *TokenConfig {
	ttlHours := t.TTLHours
	if ttlHours == 0 {
		ttlHours = 24
	}
	return &TokenConfig{
		secret: required(t.Secret, path+".secret"),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
