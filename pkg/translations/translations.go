package translations

import (
	"encoding/json"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// TranslationHelperFunc returns the text for a given key, falling back to the
// supplied default when no override is configured.
type TranslationHelperFunc func(key string, defaultValue string) string

// NullTranslationHelper always returns the default value.
func NullTranslationHelper(_ string, defaultValue string) string {
	return defaultValue
}

// TranslationHelper returns a helper that resolves tool descriptions from
// environment variables (MCP_GITHUB_<KEY>) or an mcp-github-config.json file
// in the working directory, and a dump function that writes every key seen so
// far back to that file.
func TranslationHelper() (TranslationHelperFunc, func()) {
	translationKeyMap := map[string]string{}
	v := viper.New()

	v.SetEnvPrefix("MCP_GITHUB")
	v.AutomaticEnv()

	v.SetConfigName("mcp-github-config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine, overrides are optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.WithError(err).Warn("could not read translation config file")
		}
	}

	return func(key string, defaultValue string) string {
			key = strings.ToUpper(key)
			if value, ok := translationKeyMap[key]; ok {
				return value
			}
			if value := v.GetString(key); value != "" {
				translationKeyMap[key] = value
				return value
			}
			translationKeyMap[key] = defaultValue
			return defaultValue
		}, func() {
			DumpTranslationKeyMap(translationKeyMap)
		}
}

// DumpTranslationKeyMap writes the collected keys to mcp-github-config.json so
// users have a starting point for customizing tool descriptions.
func DumpTranslationKeyMap(translationKeyMap map[string]string) {
	file, err := os.Create("mcp-github-config.json")
	if err != nil {
		log.WithError(err).Fatal("failed to create translation file")
	}
	defer func() { _ = file.Close() }()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(translationKeyMap); err != nil {
		log.WithError(err).Fatal("failed to write translation file")
	}
}
