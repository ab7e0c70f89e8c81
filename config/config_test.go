package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/juho05/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetSeverity(log.NONE)
	os.Exit(m.Run())
}

func TestLoad(t *testing.T) {
	fullConfig := Config{
		DBDriver:              DBDriverPostgres,
		DBUser:                "testuser",
		DBPassword:            "testpassword",
		DBName:                "testname",
		DBHost:                "testhost",
		DBPort:                1234,
		AutoMigrate:           false,
		LogLevel:              log.TRACE,
		FetchWindowMin:        50,
		FetchWindowMultiplier: 3,
		ResolverCacheSize:     64,
	}

	defaultConfig := Config{
		DBDriver:              DBDriverPostgres,
		DBUser:                "testuser",
		DBPassword:            "testpassword",
		DBName:                "testname",
		DBHost:                "testhost",
		DBPort:                1234,
		AutoMigrate:           true,
		LogLevel:              log.INFO,
		FetchWindowMin:        100,
		FetchWindowMultiplier: 5,
		ResolverCacheSize:     512,
	}

	sqliteConfig := defaultConfig
	sqliteConfig.DBDriver = DBDriverSQLite
	sqliteConfig.DBPath = "/test/library.db"
	sqliteConfig.DBUser = ""
	sqliteConfig.DBPassword = ""
	sqliteConfig.DBName = ""
	sqliteConfig.DBHost = ""
	sqliteConfig.DBPort = 0

	logFileName := filepath.Join(t.TempDir(), "test.log")
	envFull := []string{
		"DB_DRIVER=" + string(fullConfig.DBDriver),
		"DB_USER=" + fullConfig.DBUser,
		"DB_PASSWORD=" + fullConfig.DBPassword,
		"DB_NAME=" + fullConfig.DBName,
		"DB_HOST=" + fullConfig.DBHost,
		"DB_PORT=" + strconv.Itoa(fullConfig.DBPort),
		"AUTO_MIGRATE=" + strconv.FormatBool(fullConfig.AutoMigrate),
		"LOG_LEVEL=" + strconv.Itoa(int(fullConfig.LogLevel)),
		"LOG_FILE=" + logFileName,
		"LOG_APPEND=true",
		"FETCH_WINDOW_MIN=" + strconv.Itoa(fullConfig.FetchWindowMin),
		"FETCH_WINDOW_MULTIPLIER=" + strconv.Itoa(fullConfig.FetchWindowMultiplier),
		"RESOLVER_CACHE_SIZE=" + strconv.Itoa(fullConfig.ResolverCacheSize),
	}

	envRequired := []string{
		"DB_USER=" + fullConfig.DBUser,
		"DB_PASSWORD=" + fullConfig.DBPassword,
		"DB_NAME=" + fullConfig.DBName,
		"DB_HOST=" + fullConfig.DBHost,
		"DB_PORT=" + strconv.Itoa(fullConfig.DBPort),
	}

	envSQLite := []string{
		"DB_DRIVER=sqlite3",
		"DB_PATH=" + sqliteConfig.DBPath,
	}

	tests := []struct {
		name       string
		env        []string
		hasLogFile bool
		config     Config
		wantErrs   bool
	}{
		{"nil environment", nil, false, Config{}, true},
		{"empty environment", make([]string, 0), false, Config{}, true},
		{"only required keys are set", envRequired, false, defaultConfig, false},
		{"all keys are set", envFull, true, fullConfig, false},
		{"sqlite does not need postgres keys", envSQLite, false, sqliteConfig, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, errs := Load(tt.env)
			assert.Equal(t, tt.wantErrs, len(errs) > 1) // check for multiple errors
			if errs != nil {
				return
			}
			assert.Equal(t, tt.config.DBDriver, conf.DBDriver)
			assert.Equal(t, tt.config.DBUser, conf.DBUser)
			assert.Equal(t, tt.config.DBPassword, conf.DBPassword)
			assert.Equal(t, tt.config.DBName, conf.DBName)
			assert.Equal(t, tt.config.DBHost, conf.DBHost)
			assert.Equal(t, tt.config.DBPort, conf.DBPort)
			assert.Equal(t, tt.config.DBPath, conf.DBPath)
			assert.Equal(t, tt.config.AutoMigrate, conf.AutoMigrate)
			assert.Equal(t, tt.config.LogLevel, conf.LogLevel)
			assert.Equal(t, tt.config.FetchWindowMin, conf.FetchWindowMin)
			assert.Equal(t, tt.config.FetchWindowMultiplier, conf.FetchWindowMultiplier)
			assert.Equal(t, tt.config.ResolverCacheSize, conf.ResolverCacheSize)
			if tt.hasLogFile {
				assert.Equal(t, logFileName, conf.LogFile.Name())
				conf.LogFile.Close()
			} else {
				assert.Equal(t, os.Stderr, conf.LogFile)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"postgres", Config{DBDriver: DBDriverPostgres, DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: 5432, DBName: "n"}, "postgres://u:p@h:5432/n?sslmode=disable"},
		{"sqlite3", Config{DBDriver: DBDriverSQLite, DBPath: "/data/library.db"}, "/data/library.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.DSN())
		})
	}
}

func TestDBDriver_Valid(t *testing.T) {
	tests := []struct {
		name string
		d    DBDriver
		want bool
	}{
		{"postgres is valid", DBDriverPostgres, true},
		{"sqlite3 is valid", DBDriverSQLite, true},
		{"mysql is invalid", DBDriver("mysql"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Valid())
		})
	}
}

func Test_boolean(t *testing.T) {
	env := map[string]string{
		"KEY_true":    "true",
		"KEY_1":       "1",
		"KEY_false":   "false",
		"KEY_0":       "0",
		"KEY_empty":   "",
		"KEY_invalid": "asdf",
	}
	tests := []struct {
		name    string
		key     string
		def     bool
		want    bool
		wantErr bool
	}{
		{"'true' works", "KEY_true", false, true, false},
		{"'1' works", "KEY_1", false, true, false},
		{"'false' works", "KEY_false", true, false, false},
		{"'0' works", "KEY_0", true, false, false},
		{"default is returned on empty env", "KEY_empty", true, true, false},
		{"default is returned on non-existing env", "asdf", false, false, false},
		{"invalid value leads to error", "KEY_invalid", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := boolean(env, tt.key, tt.def)
			assertEqualOrErr(t, tt.key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_optionalString(t *testing.T) {
	env := map[string]string{
		"KEY_empty": "",
		"KEY_asdf":  "asdf",
	}
	tests := []struct {
		name string
		key  string
		def  string
		want string
	}{
		{"missing key", "does not exist", "default", "default"},
		{"empty value", "KEY_empty", "default", "default"},
		{"existing value", "KEY_asdf", "default", "asdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, optionalString(env, tt.key, tt.def))
		})
	}
}

func Test_requiredString(t *testing.T) {
	env := map[string]string{
		"KEY_empty": "",
		"KEY_asdf":  "asdf",
	}
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{"missing key", "does not exist", "", true},
		{"empty value", "KEY_empty", "", true},
		{"existing value", "KEY_asdf", "asdf", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := requiredString(env, tt.key)
			assertEqualOrErr(t, tt.key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_requiredInt(t *testing.T) {
	env := map[string]string{
		"KEY_empty": "",
		"KEY_asdf":  "asdf",
		"KEY_42":    "42",
		"KEY_42.5":  "42.5",
	}
	tests := []struct {
		name    string
		key     string
		want    int
		wantErr bool
	}{
		{"missing key", "does not exist", 0, true},
		{"empty value", "KEY_empty", 0, true},
		{"invalid value (letters)", "KEY_asdf", 0, true},
		{"invalid value (float)", "KEY_42.5", 0, true},
		{"valid integer value", "KEY_42", 42, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := requiredInt(env, tt.key)
			assertEqualOrErr(t, tt.key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadAutoMigrate(t *testing.T) {
	key := "AUTO_MIGRATE"
	tests := []struct {
		name    string
		value   string
		want    bool
		wantErr bool
	}{
		{"empty value", "", true, false},
		{"invalid value", "asdf", false, true},
		{"valid value (true)", "true", true, false},
		{"valid value (0)", "0", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadAutoMigrate(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadDBHost(t *testing.T) {
	key := "DB_HOST"
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"empty value", "", "", true},
		{"existing value", "testhost", "testhost", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadDBHost(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadDBName(t *testing.T) {
	key := "DB_NAME"
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"empty value", "", "", true},
		{"existing value", "testdbname", "testdbname", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadDBName(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadDBPassword(t *testing.T) {
	key := "DB_PASSWORD"
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"empty value", "", "", true},
		{"existing value", "testpassword", "testpassword", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadDBPassword(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadDBPort(t *testing.T) {
	key := "DB_PORT"
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"empty value", "", 0, true},
		{"invalid value", "asdf", 0, true},
		{"existing value", "8080", 8080, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadDBPort(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadDBUser(t *testing.T) {
	key := "DB_USER"
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"empty value", "", "", true},
		{"existing value", "testuser", "testuser", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadDBUser(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadLogFile(t *testing.T) {
	key := "LOG_FILE"
	keyAppend := "LOG_APPEND"

	dir := t.TempDir()

	tests := []struct {
		name                 string
		fileValue            string
		appendValue          string
		createFileBeforeTest bool
		wantAppend           bool
	}{
		{"empty value", "", "", false, false},
		{"file does not exist", filepath.Join(dir, "log1.txt"), "", false, false},
		{"file already exists (no append)", filepath.Join(dir, "log2.txt"), "false", true, false},
		{"file already exists (append)", filepath.Join(dir, "log3.txt"), "1", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.createFileBeforeTest {
				file, err := os.Create(tt.fileValue)
				require.NoErrorf(t, err, "create log file: %v", err)
				_, err = file.WriteString("TestContent\nbla")
				require.NoErrorf(t, err, "write to log file: %v", err)
				file.Close()
			}

			env := map[string]string{
				key:       tt.fileValue,
				keyAppend: tt.appendValue,
			}

			logFile, err := loadLogFile(env)
			if err == nil && tt.fileValue != "" {
				defer logFile.Close()
			}
			require.NoErrorf(t, err, "load log file: %v", err)

			if tt.fileValue == "" {
				assert.Equal(t, os.Stderr, logFile)
				return
			}

			_, err = logFile.WriteString("log entry1\nlog entry2\n")
			assert.NoErrorf(t, err, "write to config log file: %v", err)
			logFile.Close()

			fileContent, err := os.ReadFile(tt.fileValue)
			require.NoErrorf(t, err, "read log file: %v", err)
			fileContentStr := string(fileContent)
			assert.True(t, strings.Contains(fileContentStr, "log entry1\nlog entry2\n"))
			assert.Equal(t, tt.createFileBeforeTest && tt.wantAppend, strings.HasPrefix(fileContentStr, "TestContent\nbla"))
		})
	}
}

func Test_loadLogLevel(t *testing.T) {
	key := "LOG_LEVEL"
	tests := []struct {
		name    string
		value   string
		want    log.Severity
		wantErr bool
	}{
		{"empty value", "", log.INFO, false},
		{"invalid value (letters)", "asdf", 0, true},
		{"invalid value (>5)", "6", 0, true},
		{"invalid value (<0)", "-1", 0, true},
		{"trace", "5", log.TRACE, false},
		{"info", "4", log.INFO, false},
		{"warn", "3", log.WARNING, false},
		{"error", "2", log.ERROR, false},
		{"fatal", "1", log.FATAL, false},
		{"none", "0", log.NONE, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadLogLevel(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadDBDriver(t *testing.T) {
	key := "DB_DRIVER"
	tests := []struct {
		name    string
		value   string
		want    DBDriver
		wantErr bool
	}{
		{"empty value", "", DBDriverPostgres, false},
		{"invalid value", "mysql", "", true},
		{"postgres", "postgres", DBDriverPostgres, false},
		{"sqlite3", "sqlite3", DBDriverSQLite, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadDBDriver(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadDBPath(t *testing.T) {
	key := "DB_PATH"
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"empty value", "", "", true},
		{"existing value", "/test/library.db", "/test/library.db", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := loadDBPath(map[string]string{
				key: tt.value,
			})
			assertEqualOrErr(t, key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_positiveInt(t *testing.T) {
	env := map[string]string{
		"KEY_empty": "",
		"KEY_asdf":  "asdf",
		"KEY_0":     "0",
		"KEY_-3":    "-3",
		"KEY_42":    "42",
	}
	tests := []struct {
		name    string
		key     string
		want    int
		wantErr bool
	}{
		{"missing key", "does not exist", 7, false},
		{"empty value", "KEY_empty", 7, false},
		{"invalid value", "KEY_asdf", 0, true},
		{"zero", "KEY_0", 0, true},
		{"negative", "KEY_-3", 0, true},
		{"valid value", "KEY_42", 42, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := positiveInt(env, tt.key, 7)
			assertEqualOrErr(t, tt.key, tt.want, v, tt.wantErr, err)
		})
	}
}

func Test_loadFetchWindow(t *testing.T) {
	v, err := loadFetchWindowMin(map[string]string{})
	assert.NoError(t, err)
	assert.Equal(t, 100, v)
	v, err = loadFetchWindowMultiplier(map[string]string{})
	assert.NoError(t, err)
	assert.Equal(t, 5, v)
	v, err = loadResolverCacheSize(map[string]string{"RESOLVER_CACHE_SIZE": "0"})
	var configErr Error
	if assert.ErrorAs(t, err, &configErr) {
		assert.Equal(t, "RESOLVER_CACHE_SIZE", configErr.Key)
	}
}

func assertEqualOrErr[T any](t *testing.T, key string, want, got T, wantErr bool, err error) {
	t.Helper()
	if wantErr {
		var configErr Error
		if assert.ErrorAs(t, err, &configErr) {
			assert.Equal(t, key, configErr.Key)
		}
	} else {
		assert.Equal(t, want, got)
	}
}

func TestError(t *testing.T) {
	err := newErrorf("LOG_FILE", "failed to open log file: %s", "permission denied")
	assert.Equal(t, "config: LOG_FILE: failed to open log file: permission denied", err.Error())
	var target Error
	require.ErrorAs(t, error(err), &target)
	assert.Equal(t, "LOG_FILE", target.Key)
}
