package backend

import (
	"fmt"

	"budget/internal/config"
)

// FromAppConfig maps the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:             backendType,
		UsersFile:        appConfig.UsersFile,
		TransactionsFile: appConfig.TransactionsFile,
		SQLiteDBPath:     appConfig.SQLiteDBPath,
	}, nil
}
