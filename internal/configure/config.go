package configure

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const EnvPrefix = "IR"

// LegacyAllowlistEnv is the variable older deployments set the host list in.
const LegacyAllowlistEnv = "URL_WHITELIST"

func checkErr(err error) {
	if err != nil {
		zap.S().Fatalw("config",
			"error", err,
		)
	}
}

func Default() Config {
	c := Config{
		Level:      "info",
		ConfigFile: "config.yaml",
	}

	c.Http.Bind = "0.0.0.0:3000"
	c.Fetch.TimeoutSeconds = 10
	c.Fetch.MaxBodySize = 32 << 20
	c.Fetch.UserAgent = "seventv-image-resizer"
	c.Image.Scaler = "imaging"
	c.Image.JPEGQuality = 75
	c.Image.MaxPixels = 50_000_000
	c.Health.Bind = "0.0.0.0:9200"
	c.Monitoring.Bind = "0.0.0.0:9100"

	return c
}

func New() *Config {
	initLogging("info")

	config := viper.New()

	// Default config
	b, _ := json.Marshal(Default())
	tmp := viper.New()
	defaultConfig := bytes.NewReader(b)
	tmp.SetConfigType("json")
	checkErr(tmp.ReadConfig(defaultConfig))
	checkErr(config.MergeConfigMap(tmp.AllSettings()))

	pflag.String("config", "config.yaml", "Config file location")
	pflag.Bool("noheader", false, "Disable the startup header")

	pflag.Parse()
	checkErr(config.BindPFlags(pflag.CommandLine))

	// File
	config.SetConfigFile(config.GetString("config"))
	config.AddConfigPath(".")
	if err := config.ReadInConfig(); err == nil {
		checkErr(config.MergeInConfig())
	}

	c, err := fromEnv(config)
	checkErr(err)

	initLogging(c.Level)

	return c
}

// fromEnv layers the environment over whatever config already holds and
// decodes the result.
func fromEnv(config *viper.Viper) (*Config, error) {
	config.SetEnvPrefix(EnvPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AllowEmptyEnv(true)
	config.AutomaticEnv()

	bindEnvs(config, Config{})
	if err := config.BindEnv("allowlist.hosts", EnvPrefix+"_ALLOWLIST_HOSTS", LegacyAllowlistEnv); err != nil {
		return nil, err
	}

	c := &Config{}
	if err := config.Unmarshal(c); err != nil {
		return nil, err
	}

	return c, nil
}

func bindEnvs(config *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch v.Kind() {
		case reflect.Struct:
			bindEnvs(config, v.Interface(), append(parts, tv)...)
		default:
			_ = config.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

type Config struct {
	Level      string `mapstructure:"level" json:"level"`
	ConfigFile string `mapstructure:"config" json:"config"`
	NoHeader   bool   `mapstructure:"noheader" json:"noheader"`

	Http struct {
		Bind string `mapstructure:"bind" json:"bind"`
	} `mapstructure:"http" json:"http"`

	Allowlist struct {
		Hosts []string `mapstructure:"hosts" json:"hosts"`
	} `mapstructure:"allowlist" json:"allowlist"`

	Fetch struct {
		TimeoutSeconds int    `mapstructure:"timeout_seconds" json:"timeout_seconds"`
		MaxBodySize    int    `mapstructure:"max_body_size" json:"max_body_size"`
		UserAgent      string `mapstructure:"user_agent" json:"user_agent"`
	} `mapstructure:"fetch" json:"fetch"`

	Image struct {
		Scaler      string `mapstructure:"scaler" json:"scaler"`
		JPEGQuality int    `mapstructure:"jpeg_quality" json:"jpeg_quality"`
		MaxPixels   int    `mapstructure:"max_pixels" json:"max_pixels"`
	} `mapstructure:"image" json:"image"`

	Worker struct {
		Jobs int `mapstructure:"jobs" json:"jobs"`
	} `mapstructure:"worker" json:"worker"`

	Health struct {
		Bind    string `mapstructure:"bind" json:"bind"`
		Enabled bool   `mapstructure:"enabled" json:"enabled"`
	} `mapstructure:"health" json:"health"`

	Monitoring struct {
		Bind    string `mapstructure:"bind" json:"bind"`
		Enabled bool   `mapstructure:"enabled" json:"enabled"`
		Labels  Labels `mapstructure:"labels" json:"labels"`
	} `mapstructure:"monitoring" json:"monitoring"`
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

type Labels []struct {
	Key   string `mapstructure:"key" json:"key"`
	Value string `mapstructure:"value" json:"value"`
}

func (l Labels) ToPrometheus() prometheus.Labels {
	mp := prometheus.Labels{}

	for _, v := range l {
		mp[v.Key] = v.Value
	}

	return mp
}
