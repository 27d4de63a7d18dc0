// Package config holds the runtime settings of the datagov chaincode binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. DATAGOV_LOG_SPEC.
const EnvPrefix = "DATAGOV"

// Config is the full set of settings read by viper.
type Config struct {
	Chaincode ChaincodeConfig `mapstructure:"chaincode"`
	Log       LogConfig       `mapstructure:"log"`
	Metadata  MetadataConfig  `mapstructure:"metadata"`
}

// ChaincodeConfig controls chaincode-as-a-service mode. It is ignored when
// the peer launches the chaincode itself.
type ChaincodeConfig struct {
	ID      string    `mapstructure:"id"`
	Address string    `mapstructure:"address"`
	TLS     TLSConfig `mapstructure:"tls"`
	// BootstrapMSPID limits InitRegistry to one organization. Empty allows any caller.
	BootstrapMSPID string `mapstructure:"bootstrap_msp_id"`
}

// TLSConfig paths are PEM files.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Key      string `mapstructure:"key"`
	Cert     string `mapstructure:"cert"`
	ClientCA string `mapstructure:"client_ca"`
}

// LogConfig selects flogging levels per logger.
type LogConfig struct {
	Spec string `mapstructure:"spec"`
}

// MetadataConfig is reported in the contract metadata.
type MetadataConfig struct {
	Title   string `mapstructure:"title"`
	Version string `mapstructure:"version"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		Chaincode: ChaincodeConfig{
			Address: "0.0.0.0:9999",
		},
		Log: LogConfig{Spec: "info"},
		Metadata: MetadataConfig{
			Title:   "datagov",
			Version: "0.1.0",
		},
	}
}

// SetDefaults registers Defaults() with v and binds the environment.
// CHAINCODE_ID and CHAINCODE_SERVER_ADDRESS are the names Fabric's external
// builders export, so they are honoured alongside the DATAGOV_ forms.
func SetDefaults(v *viper.Viper) {
	defaults := Defaults()
	v.SetDefault("chaincode.id", defaults.Chaincode.ID)
	v.SetDefault("chaincode.address", defaults.Chaincode.Address)
	v.SetDefault("chaincode.tls.enabled", defaults.Chaincode.TLS.Enabled)
	v.SetDefault("chaincode.tls.key", defaults.Chaincode.TLS.Key)
	v.SetDefault("chaincode.tls.cert", defaults.Chaincode.TLS.Cert)
	v.SetDefault("chaincode.tls.client_ca", defaults.Chaincode.TLS.ClientCA)
	v.SetDefault("chaincode.bootstrap_msp_id", defaults.Chaincode.BootstrapMSPID)
	v.SetDefault("log.spec", defaults.Log.Spec)
	v.SetDefault("metadata.title", defaults.Metadata.Title)
	v.SetDefault("metadata.version", defaults.Metadata.Version)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("chaincode.id", EnvPrefix+"_CHAINCODE_ID", "CHAINCODE_ID")
	_ = v.BindEnv("chaincode.address", EnvPrefix+"_CHAINCODE_ADDRESS", "CHAINCODE_SERVER_ADDRESS")
}

// Load reads cfgFile (optional) into a Config. A missing default config file
// is not an error; a missing explicit one is.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("datagov")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/datagov")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Validate checks settings needed in every mode.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Log.Spec) == "" {
		return errors.New("log.spec must not be empty")
	}
	if strings.TrimSpace(c.Metadata.Title) == "" {
		return errors.New("metadata.title must not be empty")
	}
	return nil
}

// ValidateServer additionally checks the chaincode-as-a-service settings.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Chaincode.ID == "" {
		return errors.New("chaincode.id is required in server mode")
	}
	if c.Chaincode.Address == "" {
		return errors.New("chaincode.address is required in server mode")
	}
	if c.Chaincode.TLS.Enabled && (c.Chaincode.TLS.Key == "" || c.Chaincode.TLS.Cert == "") {
		return errors.New("chaincode.tls.key and chaincode.tls.cert are required when TLS is enabled")
	}
	return nil
}

// TLSProperties loads the configured PEM files for shim.ChaincodeServer.
func (c Config) TLSProperties() (shim.TLSProperties, error) {
	tls := c.Chaincode.TLS
	if !tls.Enabled {
		return shim.TLSProperties{Disabled: true}, nil
	}
	key, err := os.ReadFile(tls.Key)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("reading TLS key: %w", err)
	}
	cert, err := os.ReadFile(tls.Cert)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("reading TLS cert: %w", err)
	}
	props := shim.TLSProperties{Key: key, Cert: cert}
	if tls.ClientCA != "" {
		ca, err := os.ReadFile(tls.ClientCA)
		if err != nil {
			return shim.TLSProperties{}, fmt.Errorf("reading TLS client CA: %w", err)
		}
		props.ClientCACerts = ca
	}
	return props, nil
}
