package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type envConfig struct {
	LogLevel           string
	ServerAddr         string
	ServerPort         int
	Version            string
	EmployeeAPIURL     string
	LeaveAPIURL        string
	AuthMode           string
	AuthEndpoint       string
	UserDirectoryFile  string
	JWTSecret          string
	TokenTTL           time.Duration
	TokenFileLocation  string
	EmailTo            string
	EmailFrom          string
	AWSRegion          string
	EmployeePageSize   int
	LeavePageSize      int
	HTTPTimeout        time.Duration
	RateLimitPerSecond int
	AllowedOrigins     []string
}

func NewEnvironmentConfig() *envConfig {
	return &envConfig{
		LogLevel:           getEnvString("LOG_LEVEL", "INFO"),
		ServerAddr:         getEnvString("SERVER_ADDR", "127.0.0.1"),
		ServerPort:         getEnvInt("SERVER_PORT", 8080),
		Version:            getEnvString("VERSION", ""),
		EmployeeAPIURL:     getEnvString("EMPLOYEE_API_URL", "http://localhost:5000"),
		LeaveAPIURL:        getEnvString("LEAVE_API_URL", "http://localhost:3001"),
		AuthMode:           getEnvString("AUTH_MODE", AuthModeRemote),
		AuthEndpoint:       getEnvString("AUTH_ENDPOINT", "http://localhost:5000/auth"),
		UserDirectoryFile:  getEnvString("USER_DIRECTORY_FILE", "users.yaml"),
		JWTSecret:          getEnvString("JWT_SECRET", ""),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 8*time.Hour),
		TokenFileLocation:  getEnvString("TOKEN_FILE_LOCATION", "session_token.json"),
		EmailTo:            getEnvString("EMAIL_TO", ""),
		EmailFrom:          getEnvString("EMAIL_FROM", ""),
		AWSRegion:          getEnvString("AWS_REGION", "eu-west-1"),
		EmployeePageSize:   getEnvInt("EMPLOYEE_PAGE_SIZE", 5),
		LeavePageSize:      getEnvInt("LEAVE_PAGE_SIZE", 10),
		HTTPTimeout:        getEnvDuration("HTTP_TIMEOUT", 5*time.Second),
		RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 0),
		AllowedOrigins:     getEnvList("ALLOWED_ORIGINS", []string{DefaultConsoleOrigin}),
	}
}

// helper function to read an environment or return a default value
func getEnvString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

// helper function to read an environment or return a default value
func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(getEnvString(key, strconv.Itoa(defaultVal)))
	if err == nil {
		return val
	}

	return defaultVal
}

// getEnvDuration accepts Go durations such as "30s" or "8h".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val, err := time.ParseDuration(getEnvString(key, defaultVal.String()))
	if err == nil {
		return val
	}

	return defaultVal
}

// getEnvList reads a comma separated list.
func getEnvList(key string, defaultVal []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
