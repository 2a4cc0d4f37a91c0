// Package config provides configuration management for the WayForPay client.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the WayForPay client and its HTTP facade.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Listen  struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5100"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"wayforpay"`
	} `yaml:"mongo"`
	Merchant struct {
		Account  string `yaml:"account" env:"MERCHANT_ACCOUNT" env-default:""`
		Password string `yaml:"password" env:"MERCHANT_PASSWORD" env-default:""`
		// Charset of caller-supplied field values; anything but utf8 is
		// transcoded before signing.
		Charset string `yaml:"charset" env:"MERCHANT_CHARSET" env-default:"utf8"`
	} `yaml:"merchant"`
	Gateway struct {
		ApiUrl      string        `yaml:"api_url" env:"API_URL" env-default:"https://api.wayforpay.com/api"`
		PurchaseUrl string        `yaml:"purchase_url" env:"PURCHASE_URL" env-default:"https://secure.wayforpay.com/pay"`
		WidgetUrl   string        `yaml:"widget_url" env:"WIDGET_URL" env-default:"https://secure.wayforpay.com/server/pay-widget.js"`
		Timeout     time.Duration `yaml:"timeout" env:"REQUEST_TIMEOUT" env-default:"30s"`
	} `yaml:"gateway"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = ReadConfig(path)
	})
	return instance, err
}

// ReadConfig loads a fresh configuration. An empty path reads environment
// variables only.
func ReadConfig(path string) (*Config, error) {
	conf := &Config{}
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(conf)
	} else {
		err = cleanenv.ReadConfig(path, conf)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}
	return conf, nil
}
