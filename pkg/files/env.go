package files

import (
	"os"
	"strconv"

	"github.com/inkstudio/inkstudio/pkg/models"
)

// ApplyEnv overrides settings from the environment:
//
//	INKSTUDIO_PROVIDER_URL  provider endpoint
//	INKSTUDIO_REFINE_URL    provider refine endpoint
//	INKSTUDIO_OFFLINE       use the placeholder provider when true
//	INKSTUDIO_CONCEPTS_DB   concepts database path
//	PORT                    HTTP port
//	READ_TIMEOUT            HTTP read timeout in seconds
//	WRITE_TIMEOUT           HTTP write timeout in seconds
func ApplyEnv(s *models.Settings) {
	s.Provider.Endpoint = getEnv("INKSTUDIO_PROVIDER_URL", s.Provider.Endpoint)
	s.Provider.RefineEndpoint = getEnv("INKSTUDIO_REFINE_URL", s.Provider.RefineEndpoint)
	s.Provider.Offline = getEnvAsBool("INKSTUDIO_OFFLINE", s.Provider.Offline)
	s.Storage.ConceptsDB = getEnv("INKSTUDIO_CONCEPTS_DB", s.Storage.ConceptsDB)
	s.Server.Port = getEnv("PORT", s.Server.Port)
	s.Server.ReadTimeout = getEnvAsInt("READ_TIMEOUT", s.Server.ReadTimeout)
	s.Server.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", s.Server.WriteTimeout)
}

// APIKey returns the provider key from the variable named by the settings.
func APIKey(s *models.Settings) string {
	if s.Provider.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(s.Provider.APIKeyEnv)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
