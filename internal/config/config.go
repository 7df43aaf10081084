package config

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"qotaunpack/internal/qota"
)

// KeyPrompt as a key value asks the CLI to read the key interactively.
const KeyPrompt = "-"

const defaultMode = "0644"

type Config struct {
	Key    string       `yaml:"key"`
	Cipher string       `yaml:"cipher"`
	Checks ChecksConfig `yaml:"checks"`
	Output OutputConfig `yaml:"output"`

	// Resolved by Normalize.
	cipher qota.Cipher
	mode   os.FileMode
}

type ChecksConfig struct {
	Disable  bool `yaml:"disable"`
	DataSize bool `yaml:"data_size"`
}

type OutputConfig struct {
	RemoveHeader bool   `yaml:"remove_header"`
	Mode         string `yaml:"mode"`
	Report       string `yaml:"report"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	if err := cfg.Normalize(); err != nil {
		panic("config: zero Config must normalize: " + err.Error())
	}
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse decodes a YAML document. Unknown fields are rejected and an empty
// document yields the defaults.
func Parse(b []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize applies defaults and validates every field. The CLI calls it
// again after layering flags on top of a loaded file.
func (c *Config) Normalize() error {
	c.Key = strings.TrimSpace(c.Key)
	if c.Key != "" && c.Key != KeyPrompt {
		if _, err := ParseKey(c.Key); err != nil {
			return fmt.Errorf("key: %v", err)
		}
	}

	cipher, err := qota.ParseCipher(c.Cipher)
	if err != nil {
		return fmt.Errorf("cipher: %w", err)
	}
	c.cipher = cipher
	c.Cipher = cipher.String()

	if strings.TrimSpace(c.Output.Mode) == "" {
		c.Output.Mode = defaultMode
	}
	mode, err := parseMode(c.Output.Mode)
	if err != nil {
		return fmt.Errorf("output.mode must be an octal file mode, got %q", c.Output.Mode)
	}
	c.mode = mode
	c.Output.Report = strings.TrimSpace(c.Output.Report)

	if c.Checks.Disable && c.Checks.DataSize {
		return fmt.Errorf("checks.data_size cannot be used with checks.disable")
	}
	return nil
}

// Options maps the configuration onto unpack options. Only meaningful on a
// Config returned by Default, Load or Parse, or after Normalize succeeded.
func (c Config) Options() qota.Options {
	return qota.Options{
		DisableChecks: c.Checks.Disable,
		RemoveHeader:  c.Output.RemoveHeader,
		CheckDataSize: c.Checks.DataSize,
		Cipher:        c.cipher,
	}
}

// FileMode returns the permission bits for written files, as resolved by
// Normalize.
func (c Config) FileMode() os.FileMode {
	return c.mode
}

func parseMode(s string) (os.FileMode, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0o")
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if v > 0o777 {
		return 0, fmt.Errorf("mode %o out of range", v)
	}
	return os.FileMode(v), nil
}

// ParseKey decodes a hex AES-128 key. A 0x prefix, whitespace and colons
// are ignored.
func ParseKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ':' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, fmt.Errorf("key is empty")
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("key is not valid hex: %w", err)
	}
	if len(b) != qota.KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", qota.KeySize, len(b))
	}
	return b, nil
}
