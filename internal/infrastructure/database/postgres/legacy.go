package postgres

// LegacyDatabaseConfig configuration du schéma relationnel legacy (lecture seule)
type LegacyDatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LegacyClient est le pool dédié à l'extraction depuis la base legacy.
// Type distinct de Client pour que l'injection fx ne confonde jamais les
// deux pools (legacy en lecture, cible en écriture)
type LegacyClient struct {
	*Client
}

// NewLegacyClient crée le pool de connexions vers la base legacy.
// Pool volontairement réduit : l'extraction est séquentielle et en lecture seule
func NewLegacyClient(config *LegacyDatabaseConfig) (*LegacyClient, error) {
	client, err := NewClient(&DatabaseConfig{
		Host:           config.Host,
		Port:           config.Port,
		Database:       config.Database,
		Username:       config.Username,
		Password:       config.Password,
		SSLMode:        config.SSLMode,
		MaxConnections: 5,
	})
	if err != nil {
		return nil, err
	}

	return &LegacyClient{Client: client}, nil
}
