package config

const (
	DefaultImageName       = "pgbox-postgres"
	DefaultImageTag        = "latest"
	DefaultBuildContext    = "."
	DefaultSettleDelay     = "5s"
	DefaultConnectAttempts = 3
	DefaultConnectBackoff  = "2s"
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 45432
	DefaultContainerPort   = 5432
	DefaultDatabaseName    = "docker"
	DefaultUser            = "docker"
	DefaultPassword        = "docker"
	DefaultSSLMode         = "disable"
	DefaultLogLevel        = "info"
)

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		Image: ImageConfig{
			Name:         DefaultImageName,
			Tag:          DefaultImageTag,
			BuildContext: DefaultBuildContext,
		},
		Runtime: RuntimeConfig{
			SettleDelay:     DefaultSettleDelay,
			ConnectAttempts: DefaultConnectAttempts,
			ConnectBackoff:  DefaultConnectBackoff,
		},
		Database: DatabaseConfig{
			Host:          DefaultHost,
			Port:          DefaultPort,
			ContainerPort: DefaultContainerPort,
			Name:          DefaultDatabaseName,
			User:          DefaultUser,
			Password:      DefaultPassword,
			SSLMode:       DefaultSSLMode,
		},
		LogLevel: DefaultLogLevel,
	}
}
