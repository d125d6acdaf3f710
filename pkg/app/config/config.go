package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"
)

// Config holds the application configuration.
// Config defines the struct of the global config and the struct of the
// configuration file.
type Config struct {
	Gpio        GpioConfig      `yaml:"gpio"`
	DebounceInt int             `yaml:"debounce"`
	Debounce    time.Duration   `yaml:"-"`
	Flag        FlagConfig      `yaml:"-"`
	Debug       DebugConfig     `yaml:"debug"`
	Webserver   WebserverConfig `yaml:"webserver"`
	MQTT        MQTTConfig      `yaml:"mqtt"`
}

// GpioConfig defines the gpio driver and the pins of the rotary knob.
// The pin numbers are line offsets on the gpio chip (BCM numbers for the
// gpiomem driver).
type GpioConfig struct {
	Driver string `yaml:"driver"`
	Chip   string `yaml:"chip"`
	Button int    `yaml:"button"`
	PhaseA int    `yaml:"phasea"`
	PhaseB int    `yaml:"phaseb"`
	Pullup bool   `yaml:"pullup"`
}

// FlagConfig defines the configured command line flags.
type FlagConfig struct {
	ConfigFile string
	LogLevel   string
}

// WebserverConfig defines the struct of the webserver and webservice
// configuration and configuration file.
type WebserverConfig struct {
	URL         string          `yaml:"url"`
	Webservices map[string]bool `yaml:"webservices"`
}

// MQTTConfig defines the struct of the mqtt client configuration and
// configuration file.
type MQTTConfig struct {
	Connection string `yaml:"connection"`
	Topic      string `yaml:"topic"`
}

// DebugConfig defines the struct of the debug configuration and
// configuration file.
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

// NewConfig sets the default configuration. The pin defaults match the
// reference wiring: button on line 2, phase A on 33, phase B on 32, all
// pulled up.
func NewConfig() *Config {
	return &Config{
		Gpio: GpioConfig{
			Driver: "chardev",
			Chip:   "gpiochip0",
			Button: 2,
			PhaseA: 33,
			PhaseB: 32,
			Pullup: true,
		},
		DebounceInt: 100,
		Flag:        FlagConfig{},
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
		Webserver: WebserverConfig{
			URL: "http://0.0.0.0:4000",
			Webservices: map[string]bool{
				"version": true,
				"health":  true,
				"state":   true,
			},
		},
		MQTT: MQTTConfig{
			Connection: "tcp:127.0.0.1:1883",
			Topic:      "/knob/events",
		},
	}
}

func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
	}

	if c.Flag.LogLevel != "" {
		c.Debug.FlagString = c.Flag.LogLevel
	}
	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("unable to open debug file %q: %w", c.Debug.FileString, err)
	}

	c.Debounce = time.Duration(c.DebounceInt) * time.Millisecond

	return nil
}

func (c *Config) readConfigFile() error {
	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil {
		return err
	}

	return nil
}

func (c *Config) setDebugConfig() (err error) {
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Debug.Flag = debug.Standard
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}
