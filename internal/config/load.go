package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "listmerge.toml"

// envPrefix namespaces every environment override.
const envPrefix = "LISTMERGE_"

// Load layers settings onto cfg in order: config file, environment (process
// environment first, then the env file), and finally any flag the user set
// explicitly on the command line. It returns the config file path that was
// read, or "" when none was.
func Load(cfg *Config, f *Flags, flagSet *pflag.FlagSet) (string, error) {
	if f == nil {
		f = &Flags{}
	}
	explicit := changedFlags(flagSet)

	path, err := resolveConfigPath(f.ConfigPath)
	if err != nil {
		return "", err
	}
	if path != "" {
		if err := decodeFile(cfg, path); err != nil {
			return "", err
		}
	}

	dotenv, err := readEnvFile(f.EnvFile)
	if err != nil {
		return "", err
	}
	if err := applyEnv(cfg, func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return "", err
	}

	for name, value := range explicit {
		if err := flagSet.Set(name, value); err != nil {
			return "", fmt.Errorf("reapply --%s: %w", name, err)
		}
	}
	f.Apply(cfg)

	cfg.InputDir = NormalizeDirArg(cfg.InputDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	cfg.WorkDir = NormalizeDirArg(cfg.WorkDir)
	return path, nil
}

// resolveConfigPath returns the explicit path (which must exist), or the
// default file when it is present, or "".
func resolveConfigPath(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return p, nil
	}
	info, err := os.Stat(DefaultConfigFile)
	if err == nil && !info.IsDir() {
		return DefaultConfigFile, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat config: %w", err)
	}
	return "", nil
}

func decodeFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// readEnvFile parses path without touching the process environment. A
// missing file is not an error.
func readEnvFile(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"INPUT_DIR", &cfg.InputDir},
		{"DENYLIST", &cfg.DenylistPath},
		{"OUTPUT_DIR", &cfg.OutputDir},
		{"WORK_DIR", &cfg.WorkDir},
		{"LOG_FILE", &cfg.LogFile},
	}
	for _, s := range strs {
		if v, ok := lookup(envPrefix + s.key); ok && strings.TrimSpace(v) != "" {
			*s.dst = strings.TrimSpace(v)
		}
	}
	if v, ok := lookup(envPrefix + "KEY_COLUMN"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sKEY_COLUMN must be a whole number (got %q)", envPrefix, v)
		}
		cfg.KeyColumn = n
	}
	return nil
}

// SampleConfig renders the defaults as a TOML document for `config init`.
func SampleConfig() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("# listmerge configuration\n")
	buf.WriteString("# Paths may also come from LISTMERGE_INPUT_DIR, LISTMERGE_DENYLIST,\n")
	buf.WriteString("# LISTMERGE_OUTPUT_DIR and LISTMERGE_WORK_DIR.\n\n")
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(DefaultConfig()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
