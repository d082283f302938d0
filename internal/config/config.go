package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/flutterkit-labs/flutterkit/internal/branding"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	// ProjectEnvFile is the project-local override file, read from the
	// project root.
	ProjectEnvFile = ".flutterkit.env"
)

// Recognized configuration keys.
const (
	KeyFlutterBin      = "flutter_bin"
	KeyDartBin         = "dart_bin"
	KeyPodBin          = "pod_bin"
	KeyRegistryPath    = "registry_path"
	KeySetupFunc       = "setup_func"
	KeySpinnerInterval = "spinner_interval"
	KeyFailFast        = "fail_fast"
	KeyNoColor         = "no_color"
)

// Settings is an immutable snapshot of the resolved configuration.
type Settings struct {
	FlutterBin      string
	DartBin         string
	PodBin          string
	RegistryPath    string
	SetupFunc       string
	SpinnerInterval time.Duration
	FailFast        bool
	NoColor         bool
}

// Dir returns the path to the config directory (~/.flutterkit/).
// FLUTTERKIT_HOME overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.flutterkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyFlutterBin, "flutter")
	viper.SetDefault(KeyDartBin, "dart")
	viper.SetDefault(KeyPodBin, "pod")
	viper.SetDefault(KeyRegistryPath, filepath.Join("lib", "core", "di", "setup", "presenter_setup.dart"))
	viper.SetDefault(KeySetupFunc, "setup")
	viper.SetDefault(KeySpinnerInterval, 25*time.Millisecond)
	viper.SetDefault(KeyFailFast, false)
	viper.SetDefault(KeyNoColor, false)
}

// Load initializes Viper from, in increasing priority, the defaults, the user
// config file, the project-local .flutterkit.env and the environment.
func Load(projectDir string) {
	viper.Reset()
	setDefaults()

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()

	applyProjectEnv(filepath.Join(projectDir, ProjectEnvFile))
}

// applyProjectEnv copies prefixed keys from a dotenv file into Viper. Keys
// already present in the process environment win.
func applyProjectEnv(path string) {
	values, err := godotenv.Read(path)
	if err != nil {
		return
	}
	prefix := branding.EnvPrefix() + "_"
	for k, v := range values {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if _, set := os.LookupEnv(k); set {
			continue
		}
		viper.Set(strings.ToLower(strings.TrimPrefix(k, prefix)), v)
	}
}

// Current returns the resolved settings. Load must have been called.
func Current() Settings {
	interval := viper.GetDuration(KeySpinnerInterval)
	if interval <= 0 {
		interval = 25 * time.Millisecond
	}
	return Settings{
		FlutterBin:      viper.GetString(KeyFlutterBin),
		DartBin:         viper.GetString(KeyDartBin),
		PodBin:          viper.GetString(KeyPodBin),
		RegistryPath:    viper.GetString(KeyRegistryPath),
		SetupFunc:       viper.GetString(KeySetupFunc),
		SpinnerInterval: interval,
		FailFast:        viper.GetBool(KeyFailFast),
		NoColor:         viper.GetBool(KeyNoColor),
	}
}

// Keys lists the recognized configuration keys in display order.
func Keys() []string {
	return []string{
		KeyFlutterBin, KeyDartBin, KeyPodBin,
		KeyRegistryPath, KeySetupFunc,
		KeySpinnerInterval, KeyFailFast, KeyNoColor,
	}
}

// Known reports whether key is a recognized configuration key.
func Known(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Value renders one field of the snapshot by key. ok is false for unknown keys.
func (s Settings) Value(key string) (value string, ok bool) {
	switch key {
	case KeyFlutterBin:
		return s.FlutterBin, true
	case KeyDartBin:
		return s.DartBin, true
	case KeyPodBin:
		return s.PodBin, true
	case KeyRegistryPath:
		return s.RegistryPath, true
	case KeySetupFunc:
		return s.SetupFunc, true
	case KeySpinnerInterval:
		return s.SpinnerInterval.String(), true
	case KeyFailFast:
		return strconv.FormatBool(s.FailFast), true
	case KeyNoColor:
		return strconv.FormatBool(s.NoColor), true
	}
	return "", false
}

// Set stores key in the user config file. Only the file's own contents are
// rewritten; defaults, project overrides and environment values stay out.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	user := viper.New()
	user.SetConfigFile(configFile)
	user.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := user.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	user.Set(key, value)
	if err := user.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, value)
	return nil
}
