package main

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	cfgKeyAPIURL = "api_url"
	cfgKeyToken  = "token"

	defaultAPIURL = "http://localhost:8080"
)

// loadConfig resolves settings from flags, CARDSCTL_* variables and an
// optional config file, in that order of precedence. A missing config file
// is not an error.
func loadConfig(v *viper.Viper, file string, flags *pflag.FlagSet) error {
	_ = godotenv.Load()

	v.SetDefault(cfgKeyAPIURL, defaultAPIURL)
	v.SetEnvPrefix("CARDSCTL")
	v.AutomaticEnv()

	if err := v.BindPFlag(cfgKeyAPIURL, flags.Lookup("api-url")); err != nil {
		return err
	}
	if err := v.BindPFlag(cfgKeyToken, flags.Lookup("token")); err != nil {
		return err
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".cardsctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
