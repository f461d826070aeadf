package pkgconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration
	Close() error
}

type Viper struct {
	v *viper.Viper
}

// NewViper reads the YAML file at path and layers environment variables on
// top of it. An empty path skips the file and uses defaults and env only.
func NewViper(path string, defaults ...map[string]any) (*Viper, error) {
	v := viper.New()
	for _, d := range defaults {
		for key, value := range d {
			v.SetDefault(key, value)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		return &Viper{v: v}, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return &Viper{v: v}, nil
}

func (c *Viper) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Viper) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Viper) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Viper) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *Viper) Close() error {
	return nil
}
