package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	iacrm "github.com/Nickdtt/ia-crm"
	"github.com/Nickdtt/ia-crm/api"
	"github.com/Nickdtt/ia-crm/credential"
)

// fileConfig is the YAML document accepted by --config. Every field is
// optional; flags and environment variables win over the file.
type fileConfig struct {
	BaseURL         string `yaml:"base_url"`
	CredentialsFile string `yaml:"credentials_file"`
	LogLevel        string `yaml:"log_level"`
}

type globalOptions struct {
	configFile      string
	baseURL         string
	credentialsFile string
	logLevel        string

	log *logrus.Logger
}

// complete resolves the effective configuration. Precedence: flag, then
// environment (IA_CRM_*), then the YAML config file.
func (o *globalOptions) complete() error {
	// A local .env is a development convenience; a missing file is fine.
	_ = godotenv.Load()

	var fc fileConfig
	if o.configFile != "" {
		data, err := os.ReadFile(o.configFile)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	}

	if o.baseURL == "" {
		o.baseURL = os.Getenv("IA_CRM_BASE_URL")
	}
	if o.baseURL == "" {
		o.baseURL = fc.BaseURL
	}

	if o.credentialsFile == "" {
		o.credentialsFile = os.Getenv("IA_CRM_CREDENTIALS_FILE")
	}
	if o.credentialsFile == "" {
		o.credentialsFile = fc.CredentialsFile
	}
	if o.credentialsFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		o.credentialsFile = filepath.Join(dir, "ia-crm", "credentials.json")
	}

	if fc.LogLevel != "" && o.logLevel == "info" {
		o.logLevel = fc.LogLevel
	}

	o.log = logrus.New()
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("unknown log level %q", o.logLevel)
	}
	o.log.SetLevel(level)

	return nil
}

// newClient builds the authenticated client with a file-backed credential
// store, so the session survives between CLI invocations.
func (o *globalOptions) newClient() (*iacrm.Client, error) {
	if o.baseURL == "" {
		return nil, errors.New("base URL required: pass --base-url, set IA_CRM_BASE_URL, or add base_url to the config file")
	}

	store, err := credential.NewFileStore(o.credentialsFile)
	if err != nil {
		return nil, err
	}

	return iacrm.New(o.baseURL).
		WithCredentialStore(store).
		Build()
}

func (o *globalOptions) newAPI() (*iacrm.Client, *api.API, error) {
	client, err := o.newClient()
	if err != nil {
		return nil, nil, err
	}
	return client, api.New(client), nil
}
