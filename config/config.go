package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/juho05/log"
)

type DBDriver string

type environment map[string]string

var (
	DBDriverPostgres DBDriver = "postgres"
	DBDriverSQLite   DBDriver = "sqlite3"
)

func (d DBDriver) Valid() bool {
	return d == DBDriverPostgres || d == DBDriverSQLite
}

type Config struct {
	DBDriver   DBDriver
	DBUser     string
	DBPassword string
	DBName     string
	DBHost     string
	DBPort     int
	// DBPath is the database file when DBDriver is sqlite3.
	DBPath      string
	AutoMigrate bool
	LogLevel    log.Severity
	LogFile     *os.File

	FetchWindowMin        int
	FetchWindowMultiplier int
	ResolverCacheSize     int
}

// DSN returns the data source name for DBDriver.
func (c Config) DSN() string {
	if c.DBDriver == DBDriverSQLite {
		return c.DBPath
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Load loads the configuration from environment variables into Options.
// env should be of the same format as os.Environ()
func Load(environ []string) (Config, []error) {
	env := make(environment, len(environ))
	for _, e := range environ {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) != 2 {
			log.Fatalf("invalid environment variable format: %s", e)
		}
		env[parts[0]] = parts[1]
	}

	var errors []error

	var config Config
	var err error

	config.DBDriver, err = loadDBDriver(env)
	if err != nil {
		errors = append(errors, err)
	}

	if config.DBDriver == DBDriverSQLite {
		config.DBPath, err = loadDBPath(env)
		if err != nil {
			errors = append(errors, err)
		}
	} else {
		config.DBUser, err = loadDBUser(env)
		if err != nil {
			errors = append(errors, err)
		}

		config.DBName, err = loadDBName(env)
		if err != nil {
			errors = append(errors, err)
		}

		config.DBPassword, err = loadDBPassword(env)
		if err != nil {
			errors = append(errors, err)
		}

		config.DBHost, err = loadDBHost(env)
		if err != nil {
			errors = append(errors, err)
		}

		config.DBPort, err = loadDBPort(env)
		if err != nil {
			errors = append(errors, err)
		}
	}

	config.AutoMigrate, err = loadAutoMigrate(env)
	if err != nil {
		errors = append(errors, err)
	}

	config.LogLevel, err = loadLogLevel(env)
	if err != nil {
		errors = append(errors, err)
	}

	config.LogFile, err = loadLogFile(env)
	if err != nil {
		errors = append(errors, err)
	}

	config.FetchWindowMin, err = loadFetchWindowMin(env)
	if err != nil {
		errors = append(errors, err)
	}

	config.FetchWindowMultiplier, err = loadFetchWindowMultiplier(env)
	if err != nil {
		errors = append(errors, err)
	}

	config.ResolverCacheSize, err = loadResolverCacheSize(env)
	if err != nil {
		errors = append(errors, err)
	}

	return config, errors
}

func loadDBDriver(env environment) (DBDriver, error) {
	key := "DB_DRIVER"
	driver := DBDriver(optionalString(env, key, string(DBDriverPostgres)))
	if !driver.Valid() {
		return DBDriverPostgres, newError(key, "invalid database driver (valid: postgres, sqlite3)")
	}
	return driver, nil
}

func loadDBUser(env environment) (string, error) {
	return requiredString(env, "DB_USER")
}

func loadDBPassword(env environment) (string, error) {
	return requiredString(env, "DB_PASSWORD")
}

func loadDBHost(env environment) (string, error) {
	return requiredString(env, "DB_HOST")
}

func loadDBName(env environment) (string, error) {
	return requiredString(env, "DB_NAME")
}

func loadDBPort(env environment) (int, error) {
	return requiredInt(env, "DB_PORT")
}

func loadDBPath(env environment) (string, error) {
	return requiredString(env, "DB_PATH")
}

func loadAutoMigrate(env environment) (bool, error) {
	return boolean(env, "AUTO_MIGRATE", true)
}

func loadLogLevel(env environment) (log.Severity, error) {
	key := "LOG_LEVEL"
	def := log.INFO
	logLevelStr := env[key]
	if logLevelStr == "" {
		return def, nil
	}
	level, err := strconv.Atoi(logLevelStr)
	if err != nil {
		return def, newError(key, "invalid log level: must be an integer")
	}
	if level < int(log.NONE) || level > int(log.TRACE) {
		return def, newError(key, "invalid log level: valid values: 0 (none), 1 (fatal), 2 (error), 3 (warning), 4 (info), 5 (trace)")
	}
	return log.Severity(level), nil
}

// FIXME config should not be responsible for opening log file
func loadLogFile(env environment) (*os.File, error) {
	key := "LOG_FILE"
	def := os.Stderr
	if env[key] == "" {
		return def, nil
	}
	appnd, _ := strconv.ParseBool(env["LOG_APPEND"])
	if appnd {
		file, err := os.OpenFile(env[key], os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return def, newErrorf(key, "failed to open log file (append): %s", err)
		}
		return file, nil
	} else {
		file, err := os.Create(env[key])
		if err != nil {
			return def, newErrorf(key, "failed to open log file: %s", err)
		}
		return file, nil
	}
}

func loadFetchWindowMin(env environment) (int, error) {
	return positiveInt(env, "FETCH_WINDOW_MIN", 100)
}

func loadFetchWindowMultiplier(env environment) (int, error) {
	return positiveInt(env, "FETCH_WINDOW_MULTIPLIER", 5)
}

func loadResolverCacheSize(env environment) (int, error) {
	return positiveInt(env, "RESOLVER_CACHE_SIZE", 512)
}

func optionalString(env environment, key, def string) string {
	str := env[key]
	if str == "" {
		return def
	}
	return str
}

func requiredString(env environment, key string) (string, error) {
	str := env[key]
	if str == "" {
		return "", newError(key, "must not be empty")
	}
	return str, nil
}

func requiredInt(env environment, key string) (int, error) {
	str := env[key]
	if str == "" {
		return 0, newError(key, "must not be empty")
	}
	i, err := strconv.Atoi(str)
	if err != nil {
		return 0, newError(key, "must be an integer")
	}
	return i, nil
}

func positiveInt(env environment, key string, def int) (int, error) {
	str := env[key]
	if str == "" {
		return def, nil
	}
	i, err := strconv.Atoi(str)
	if err != nil {
		return def, newError(key, "must be an integer")
	}
	if i <= 0 {
		return def, newError(key, "must be greater than 0")
	}
	return i, nil
}

func boolean(env environment, key string, def bool) (bool, error) {
	str := env[key]
	if str == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(str)
	if err != nil {
		return false, newError(key, "must be a boolean")
	}
	return b, nil
}
