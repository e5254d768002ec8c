package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig loads ./data/config.* into viper. a missing file is not an error,
// every key has a default at its use site and can be overridden from the environment.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
