package app

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/astralisgame/astralis-backend/internal/platform/envutil"
	"github.com/astralisgame/astralis-backend/internal/platform/logger"
)

type Config struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allowOrigins"`
	UsersFile    string   `yaml:"usersFile"`
	BadWordsFile string   `yaml:"badWordsFile"`
}

// LoadConfig reads the environment, then overlays an optional YAML file named
// by CONFIG_FILE. File values win over env values for the fields they set.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:         envutil.GetEnv("PORT", "3000", log),
		UsersFile:    envutil.GetEnv("USERS_FILE", "users.json", log),
		BadWordsFile: envutil.GetEnv("BAD_WORDS_FILE", "bad_words.json", log),
	}

	origins := envutil.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost:8080", log)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			log.Warn("Could not read config file, using env values", "path", path, "error", err)
		} else {
			log.Info("Applied config file overlay", "path", path)
		}
	}
	return cfg
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}
	if overlay.Port != "" {
		cfg.Port = overlay.Port
	}
	if len(overlay.AllowOrigins) > 0 {
		cfg.AllowOrigins = overlay.AllowOrigins
	}
	if overlay.UsersFile != "" {
		cfg.UsersFile = overlay.UsersFile
	}
	if overlay.BadWordsFile != "" {
		cfg.BadWordsFile = overlay.BadWordsFile
	}
	return nil
}
