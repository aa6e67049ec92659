package replay

import (
	"os"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
)

type Config struct {
	Auth AuthConfig `toml:"auth"`
}

type AuthConfig struct {
	Sentry string `toml:"sentry"`

	Influx AuthInfluxConfig `toml:"influx"`
}

type AuthInfluxConfig struct {
	URL          string `toml:"url"`
	Token        string `toml:"token"`
	Organization string `toml:"organization"`
	Database     string `toml:"database"`
}

// ReadConfig reads the config file at path. A missing file is not an error:
// sentry and metrics are both optional.
func ReadConfig(path string) (c Config, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, errors.Wrap(err, "read config file")
	}

	err = toml.Unmarshal(b, &c)
	if err != nil {
		return c, errors.Wrap(err, "unmarshal config")
	}
	return c, nil
}
