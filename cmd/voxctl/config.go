package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// voxctl config.toml keys.
type fileConfig struct {
	Address        string   `toml:"address"`
	Player         string   `toml:"player"`
	ConnectTimeout string   `toml:"connect_timeout"`
	CallTimeout    string   `toml:"call_timeout"`
	Events         []string `toml:"events"`
	Verbose        bool     `toml:"verbose"`
}

type runConfig struct {
	Address        string
	Player         string
	ConnectTimeout time.Duration
	CallTimeout    time.Duration
	Events         []string
	Verbose        bool
}

func defaultRunConfig() runConfig {
	return runConfig{
		Address:        "localhost:8765",
		ConnectTimeout: 5 * time.Second,
		CallTimeout:    30 * time.Second,
	}
}

// loadRunConfig overlays the TOML file onto the defaults. Keys absent from
// the file keep their default value.
func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load voxctl config: %w", err)
	}

	if meta.IsDefined("address") {
		cfg.Address = strings.TrimSpace(raw.Address)
	}
	if meta.IsDefined("player") {
		cfg.Player = strings.TrimSpace(raw.Player)
	}
	if meta.IsDefined("connect_timeout") {
		d, err := time.ParseDuration(raw.ConnectTimeout)
		if err != nil {
			return runConfig{}, fmt.Errorf("connect_timeout: %w", err)
		}
		cfg.ConnectTimeout = d
	}
	if meta.IsDefined("call_timeout") {
		d, err := time.ParseDuration(raw.CallTimeout)
		if err != nil {
			return runConfig{}, fmt.Errorf("call_timeout: %w", err)
		}
		cfg.CallTimeout = d
	}
	if meta.IsDefined("events") {
		cfg.Events = raw.Events
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	return cfg, nil
}
