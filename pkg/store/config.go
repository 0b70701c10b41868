// Package store is the durable key-value boundary. Everything the app
// persists lives under two fixed keys, each a single JSON blob: the user
// settings and the full cycle-record map. External collaborators (cloud
// backup) read and rewrite those blobs wholesale; the contract is only that
// each blob is one serializable value.
package store

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config supplies the on-disk location of the store.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the store path from a .cosmic36 config file or the
// COSMIC36 environment, defaulting to ~/.cosmic36.db.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.cosmic36.db")
	viper.SetConfigName(".cosmic36") // .yaml is implicit
	viper.SetEnvPrefix("COSMIC36")
	viper.AutomaticEnv()

	if override := os.Getenv("COSMIC36_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
