package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"patient-migration-core/internal/infrastructure/database/mongodb"
	"patient-migration-core/internal/infrastructure/database/postgres"
	"patient-migration-core/internal/infrastructure/database/redis"
	dedupdto "patient-migration-core/internal/modules/deduplication/dto"

	"github.com/joho/godotenv"
)

// Uniquement variables d'environnement

// Config structure unifiée
type Config struct {
	Environment    string
	Server         ServerConfig
	Database       DatabaseConfig
	LegacyDatabase LegacyDatabaseConfig
	Redis          RedisConfig
	MongoDB        MongoConfig
	Dedup          DedupConfig
	System         SystemConfig
	Logging        LoggingConfig
	CORS           CORSConfig
}

// ServerConfig configuration serveur HTTP
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig configuration PostgreSQL cible (schéma managé)
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST"`
	Port           int           `env:"DB_PORT"`
	Database       string        `env:"DB_NAME"`
	Username       string        `env:"DB_USERNAME"`
	Password       string        `env:"DB_PASSWORD"`
	MaxConnections int           `env:"DB_MAX_CONNECTIONS"`
	ConnectionTTL  time.Duration `env:"DB_CONNECTION_TTL"`
	QueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT"`
	SSLMode        string        `env:"DB_SSL_MODE"`
}

// LegacyDatabaseConfig configuration PostgreSQL legacy (lecture seule)
type LegacyDatabaseConfig struct {
	Host     string `env:"LEGACY_DB_HOST"`
	Port     int    `env:"LEGACY_DB_PORT"`
	Database string `env:"LEGACY_DB_NAME"`
	Username string `env:"LEGACY_DB_USERNAME"`
	Password string `env:"LEGACY_DB_PASSWORD"`
	SSLMode  string `env:"LEGACY_DB_SSL_MODE"`
}

// RedisConfig configuration Redis
type RedisConfig struct {
	Host        string        `env:"REDIS_HOST"`
	Port        int           `env:"REDIS_PORT"`
	Password    string        `env:"REDIS_PASSWORD"`
	Database    int           `env:"REDIS_DATABASE"`
	MaxRetries  int           `env:"REDIS_MAX_RETRIES"`
	PoolSize    int           `env:"REDIS_POOL_SIZE"`
	PoolTimeout time.Duration `env:"REDIS_POOL_TIMEOUT"`
}

// MongoConfig configuration MongoDB
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
	MaxPoolSize    int           `env:"MONGODB_MAX_POOL_SIZE"`
}

// DedupConfig seuils et pondérations du moteur de déduplication
type DedupConfig struct {
	AutomaticThreshold float64 `env:"DEDUP_AUTO_THRESHOLD"`
	ReviewThreshold    float64 `env:"DEDUP_REVIEW_THRESHOLD"`
	WeightName         float64 `env:"DEDUP_WEIGHT_NAME"`
	WeightEmail        float64 `env:"DEDUP_WEIGHT_EMAIL"`
	WeightPhone        float64 `env:"DEDUP_WEIGHT_PHONE"`
	WeightDateOfBirth  float64 `env:"DEDUP_WEIGHT_DOB"`
}

// SystemConfig configuration système
type SystemConfig struct {
	// Hash bcrypt du mot de passe autorisant le déclenchement d'une migration
	AdminPasswordHash string `env:"MIGRATION_ADMIN_PASSWORD_HASH"`

	// Cabinet cible par défaut si la requête n'en précise pas
	DefaultPracticeID string `env:"MIGRATION_DEFAULT_PRACTICE_ID"`
}

// LoggingConfig configuration logging
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL"`
}

// CORSConfig configuration CORS
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// NewConfig charge la configuration depuis les variables d'environnement uniquement
func NewConfig() (*Config, error) {
	// Charger le fichier .env (optionnel)
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] Warning: Fichier .env non trouvé: %v\n", err)
	}

	config := &Config{}

	// Déterminer environnement
	config.Environment = getEnv("APP_ENV", "development")

	// Charger configuration serveur
	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 4000),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30) * time.Second,
	}

	// Charger configuration database cible
	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Database:       getEnv("DB_NAME", "patient_migration"),
		Username:       getEnv("DB_USERNAME", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 100),
		ConnectionTTL:  getEnvDuration("DB_CONNECTION_TTL", 300) * time.Second,
		QueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 30) * time.Second,
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
	}

	// Charger configuration database legacy
	config.LegacyDatabase = LegacyDatabaseConfig{
		Host:     getEnv("LEGACY_DB_HOST", "localhost"),
		Port:     getEnvInt("LEGACY_DB_PORT", 5433),
		Database: getEnv("LEGACY_DB_NAME", "legacy_patients"),
		Username: getEnv("LEGACY_DB_USERNAME", "postgres"),
		Password: getEnv("LEGACY_DB_PASSWORD", ""),
		SSLMode:  getEnv("LEGACY_DB_SSL_MODE", "disable"),
	}

	// Charger configuration Redis
	config.Redis = RedisConfig{
		Host:        getEnv("REDIS_HOST", "localhost"),
		Port:        getEnvInt("REDIS_PORT", 6379),
		Password:    getEnv("REDIS_PASSWORD", ""),
		Database:    getEnvInt("REDIS_DATABASE", 0),
		MaxRetries:  getEnvInt("REDIS_MAX_RETRIES", 3),
		PoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
		PoolTimeout: getEnvDuration("REDIS_POOL_TIMEOUT", 30) * time.Second,
	}

	// Charger configuration MongoDB
	defaultMongoURI := ""
	if config.Environment == "development" {
		defaultMongoURI = "mongodb://localhost:27017"
	}

	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", defaultMongoURI),
		Database:       getEnv("MONGODB_DATABASE", "patient_migration_audit"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
		MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 100),
	}

	// Charger configuration déduplication
	defaults := dedupdto.DefaultDedupConfig()
	config.Dedup = DedupConfig{
		AutomaticThreshold: getEnvFloat("DEDUP_AUTO_THRESHOLD", defaults.AutomaticThreshold),
		ReviewThreshold:    getEnvFloat("DEDUP_REVIEW_THRESHOLD", defaults.ReviewThreshold),
		WeightName:         getEnvFloat("DEDUP_WEIGHT_NAME", defaults.Weights.Name),
		WeightEmail:        getEnvFloat("DEDUP_WEIGHT_EMAIL", defaults.Weights.Email),
		WeightPhone:        getEnvFloat("DEDUP_WEIGHT_PHONE", defaults.Weights.Phone),
		WeightDateOfBirth:  getEnvFloat("DEDUP_WEIGHT_DOB", defaults.Weights.DateOfBirth),
	}

	// Charger configuration système
	config.System = SystemConfig{
		AdminPasswordHash: getEnv("MIGRATION_ADMIN_PASSWORD_HASH", ""),
		DefaultPracticeID: getEnv("MIGRATION_DEFAULT_PRACTICE_ID", ""),
	}

	// Charger configuration logging
	config.Logging = LoggingConfig{
		Level: getEnv("LOG_LEVEL", "debug"),
	}

	// Charger configuration CORS
	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	// Validation configuration critique
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validation configuration échouée: %w", err)
	}

	fmt.Printf("[CONFIG] ✅ Configuration chargée pour environnement: %s\n", config.Environment)
	return config, nil
}

// Getters pour compatibilité avec l'ancien code
func (c *Config) GetDatabase() DatabaseConfig             { return c.Database }
func (c *Config) GetLegacyDatabase() LegacyDatabaseConfig { return c.LegacyDatabase }
func (c *Config) GetRedis() RedisConfig                   { return c.Redis }
func (c *Config) GetMongoDB() MongoConfig                 { return c.MongoDB }
func (c *Config) GetDedup() DedupConfig                   { return c.Dedup }
func (c *Config) GetSystem() SystemConfig                 { return c.System }
func (c *Config) GetServer() ServerConfig                 { return c.Server }
func (c *Config) GetLogging() LoggingConfig               { return c.Logging }
func (c *Config) GetCORS() CORSConfig                     { return c.CORS }

// Convertisseurs vers configurations infrastructure
func NewPostgresConfig(config *Config) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		Host:           config.Database.Host,
		Port:           config.Database.Port,
		Database:       config.Database.Database,
		Username:       config.Database.Username,
		Password:       config.Database.Password,
		SSLMode:        config.Database.SSLMode,
		MaxConnections: config.Database.MaxConnections,
		ConnectionTTL:  config.Database.ConnectionTTL,
		QueryTimeout:   config.Database.QueryTimeout,
	}
}

func NewLegacyPostgresConfig(config *Config) *postgres.LegacyDatabaseConfig {
	return &postgres.LegacyDatabaseConfig{
		Host:     config.LegacyDatabase.Host,
		Port:     config.LegacyDatabase.Port,
		Database: config.LegacyDatabase.Database,
		Username: config.LegacyDatabase.Username,
		Password: config.LegacyDatabase.Password,
		SSLMode:  config.LegacyDatabase.SSLMode,
	}
}

func NewRedisConfig(config *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:        config.Redis.Host,
		Port:        config.Redis.Port,
		Password:    config.Redis.Password,
		Database:    config.Redis.Database,
		MaxRetries:  config.Redis.MaxRetries,
		PoolSize:    config.Redis.PoolSize,
		PoolTimeout: config.Redis.PoolTimeout,
	}
}

func NewMongoConfig(config *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:            config.MongoDB.URI,
		Database:       config.MongoDB.Database,
		ConnectTimeout: config.MongoDB.ConnectTimeout,
		MaxPoolSize:    config.MongoDB.MaxPoolSize,
	}
}

// NewDedupConfig construit la configuration du moteur de déduplication
func NewDedupConfig(config *Config) dedupdto.DedupConfig {
	return dedupdto.DedupConfig{
		Weights: dedupdto.SimilarityWeights{
			Name:        config.Dedup.WeightName,
			Email:       config.Dedup.WeightEmail,
			Phone:       config.Dedup.WeightPhone,
			DateOfBirth: config.Dedup.WeightDateOfBirth,
		},
		AutomaticThreshold: config.Dedup.AutomaticThreshold,
		ReviewThreshold:    config.Dedup.ReviewThreshold,
	}
}

// Helpers pour parsing variables d'environnement
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// validateConfig valide la configuration selon l'environnement
func validateConfig(config *Config) error {
	env := config.Environment

	// Validation environnements supportés
	if env != "development" && env != "docker" {
		return fmt.Errorf("environnement non supporté: %s (utilisez 'development' ou 'docker')", env)
	}

	// Les pondérations doivent former une somme unitaire
	weightSum := config.Dedup.WeightName + config.Dedup.WeightEmail +
		config.Dedup.WeightPhone + config.Dedup.WeightDateOfBirth
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("pondérations de déduplication invalides: somme=%f (attendu 1.0)", weightSum)
	}
	if config.Dedup.ReviewThreshold > config.Dedup.AutomaticThreshold {
		return fmt.Errorf("seuil de revue (%f) supérieur au seuil automatique (%f)",
			config.Dedup.ReviewThreshold, config.Dedup.AutomaticThreshold)
	}

	missingVars := []string{}

	// Variables critiques en mode docker (production/staging)
	if env == "docker" {
		if config.Database.Password == "" {
			missingVars = append(missingVars, "DB_PASSWORD")
		}
		if config.LegacyDatabase.Password == "" {
			missingVars = append(missingVars, "LEGACY_DB_PASSWORD")
		}
		if config.System.AdminPasswordHash == "" {
			missingVars = append(missingVars, "MIGRATION_ADMIN_PASSWORD_HASH")
		}

		// Warning pour variables recommandées en docker
		if config.Redis.Password == "" {
			fmt.Printf("[CONFIG] ⚠️ REDIS_PASSWORD non défini pour environnement docker\n")
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("variables critiques manquantes pour environnement docker: %v", missingVars)
	}

	return nil
}
