package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the server's runtime configuration. Every field has a default and
// can be overridden through DRAWBOARD_* environment variables, e.g.
// DRAWBOARD_ADDR=:9000 or DRAWBOARD_MDNS=false.
type Config struct {
	Addr        string
	DefaultRoom string
	MaxNameLen  int
	MaxRoomLen  int
	MDNS        bool
	ServiceName string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DRAWBOARD")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8888")
	v.SetDefault("default_room", "default")
	v.SetDefault("max_name_len", 32)
	v.SetDefault("max_room_len", 64)
	v.SetDefault("mdns", true)
	v.SetDefault("service_name", "drawboard")

	cfg := Config{
		Addr:        v.GetString("addr"),
		DefaultRoom: v.GetString("default_room"),
		MaxNameLen:  v.GetInt("max_name_len"),
		MaxRoomLen:  v.GetInt("max_room_len"),
		MDNS:        v.GetBool("mdns"),
		ServiceName: v.GetString("service_name"),
	}
	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("addr must not be empty")
	}
	if cfg.MaxNameLen <= 0 || cfg.MaxRoomLen <= 0 {
		return Config{}, fmt.Errorf("name and room length caps must be positive")
	}
	return cfg, nil
}
