package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ServerConfig holds configuration variables for the server.
type ServerConfig struct {
	Scheme string
	Host   string
	Port   string

	// Key pair served when Scheme is https. A self-signed pair is
	// generated when both are empty.
	CertFile string
	KeyFile  string

	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
}

// Addr returns the address the server listens on.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// URL returns the main gateway URL for the server.
func (s *ServerConfig) URL() string {
	host := s.Host
	includePort := func() bool {
		if s.Port == "" {
			return false
		}
		if s.Scheme == "http" {
			return s.Port != "80"
		}
		// s.Scheme == "https"
		return s.Port != "443"
	}()
	if includePort {
		host = fmt.Sprintf("%s:%s", host, s.Port)
	}
	uri := url.URL{
		Scheme: s.Scheme,
		Host:   host,
	}
	return uri.String()
}

// SessionConfig holds settings for the view-state store.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration // Lifetime of an idle view

	// Path to store view state in. Empty keeps everything in memory.
	Dir string
}

// UploadConfig limits file input.
type UploadConfig struct {
	MaxBytes ByteSize
}

// LocaleConfig holds localization settings.
type LocaleConfig struct {
	Default string
}

// CORSConfig holds cross-origin settings for the API.
type CORSConfig struct {
	AllowOrigin string
}

// Config holds configuration information for the program.
type Config struct {
	Server  *ServerConfig
	Session *SessionConfig
	Upload  *UploadConfig
	Locale  *LocaleConfig
	CORS    *CORSConfig
	Remain  map[string]interface{} `mapstructure:",remain"`
}

var (
	// Current is the current configuration for the server.
	Current Config

	configPath string
)

func setConfigDefaults() {
	viper.SetDefault("server", map[string]interface{}{
		"scheme":            "http",
		"host":              "localhost",
		"port":              "8000",
		"certFile":          "",
		"keyFile":           "",
		"readHeaderTimeout": "30s",
		"writeTimeout":      "60s",
		"shutdownTimeout":   "5s",
	})

	viper.SetDefault("session", map[string]interface{}{
		"cookieName": "devtools_session",
		"ttl":        "30m",
		"dir":        "",
	})

	viper.SetDefault("upload.maxBytes", "5MiB")
	viper.SetDefault("locale.default", "en")
	viper.SetDefault("cors.allowOrigin", "*")
}

// LoadConfig loads the config file from disk.
func LoadConfig() {
	viper.Reset()
	viper.AddConfigPath("/etc/devtools/")
	viper.AddConfigPath("$HOME/.devtools")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	setConfigDefaults()

	viper.SetEnvPrefix("devtools")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No configuration found. Running with defaults...")
			configPath, err = getConfigurationDirectory()
			if err != nil {
				log.Printf("No configuration directory: %v\n", err)
			}
		} else {
			panic(fmt.Errorf("Unable to read config file: %v", err))
		}
	} else {
		configPath = filepath.Dir(viper.ConfigFileUsed())
	}

	Current = Config{}
	err = viper.Unmarshal(&Current, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToByteSizeHookFunc(),
	)))
	if err != nil {
		panic(fmt.Errorf("Error unmarshalling config: %v", err))
	}

	// Relative store paths live next to the config file.
	if dir := Current.Session.Dir; dir != "" && !filepath.IsAbs(dir) && configPath != "" {
		Current.Session.Dir = filepath.Join(configPath, dir)
	}
}

// TLS reports whether the server is served over https.
func (s *ServerConfig) TLS() bool {
	return s.Scheme == "https"
}

// Path returns the directory configuration was loaded from, if any.
func Path() string {
	return configPath
}

func getConfigurationDirectory() (string, error) {
	configDir := "/etc/devtools"
	if _, err := os.Stat(configDir); err == nil {
		return configDir, nil
	}

	// Check home directory
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	configDir = filepath.Join(home, ".devtools")
	if _, err := os.Stat(configDir); err == nil {
		return configDir, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	return "", errors.New("could not locate config dir")
}
