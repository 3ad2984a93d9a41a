package models

import (
	"time"
)

type Config struct {
	PinataJWT       string        `yaml:"pinata_jwt,omitempty"`
	APIURL          string        `yaml:"api_url"`
	GatewayURL      string        `yaml:"gateway_url"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	Port            int           `yaml:"port"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
}

// Overrides carries values given on the command line. Zero values mean
// "not set".
type Overrides struct {
	PinataJWT       string
	APIURL          string
	GatewayURL      string
	AllowedOrigins  []string
	Port            int
	UpstreamTimeout time.Duration
}
