package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"golang.org/x/time/rate"

	"github.com/syrilster/school-leave-console/internal/customhttp"
	"github.com/syrilster/school-leave-console/internal/notify"
)

const (
	AuthModeRemote = "remote"
	AuthModeLocal  = "local"

	// DefaultConsoleOrigin is where the console UI is served from in development.
	DefaultConsoleOrigin = "http://localhost:3000"
)

type ApplicationConfig struct {
	envValues   *envConfig
	httpCommand customhttp.HTTPCommand
	mailer      notify.Mailer
}

//Version returns application version
func (cfg *ApplicationConfig) Version() string {
	return cfg.envValues.Version
}

//ServerAddr returns the interface to listen on, loopback unless configured
func (cfg *ApplicationConfig) ServerAddr() string {
	return cfg.envValues.ServerAddr
}

//ServerPort returns the port no to listen for requests
func (cfg *ApplicationConfig) ServerPort() int {
	return cfg.envValues.ServerPort
}

//EmployeeAPIURL returns the base URL of the employee backend
func (cfg *ApplicationConfig) EmployeeAPIURL() string {
	return cfg.envValues.EmployeeAPIURL
}

//LeaveAPIURL returns the base URL of the leave request backend
func (cfg *ApplicationConfig) LeaveAPIURL() string {
	return cfg.envValues.LeaveAPIURL
}

//AuthMode is either remote or local
func (cfg *ApplicationConfig) AuthMode() string {
	return cfg.envValues.AuthMode
}

func (cfg *ApplicationConfig) AuthEndpoint() string {
	return cfg.envValues.AuthEndpoint
}

//UserDirectoryFile returns the YAML user file used in local auth mode
func (cfg *ApplicationConfig) UserDirectoryFile() string {
	return cfg.envValues.UserDirectoryFile
}

func (cfg *ApplicationConfig) JWTSecret() string {
	return cfg.envValues.JWTSecret
}

func (cfg *ApplicationConfig) TokenTTL() time.Duration {
	return cfg.envValues.TokenTTL
}

//TokenFileLocation returns where the session token is persisted
func (cfg *ApplicationConfig) TokenFileLocation() string {
	return cfg.envValues.TokenFileLocation
}

//EmailTo returns the approvers notified of new leave requests
func (cfg *ApplicationConfig) EmailTo() []string {
	return notify.Recipients(cfg.envValues.EmailTo)
}

//EmailFrom returns the From email address
func (cfg *ApplicationConfig) EmailFrom() string {
	return cfg.envValues.EmailFrom
}

func (cfg *ApplicationConfig) EmployeePageSize() int {
	return cfg.envValues.EmployeePageSize
}

func (cfg *ApplicationConfig) LeavePageSize() int {
	return cfg.envValues.LeavePageSize
}

func (cfg *ApplicationConfig) AllowedOrigins() []string {
	return cfg.envValues.AllowedOrigins
}

//HTTPCommand returns the client shared by the backend gateway and the auth service
func (cfg *ApplicationConfig) HTTPCommand() customhttp.HTTPCommand {
	return cfg.httpCommand
}

//Mailer returns the SES mailer, or a logging mailer when no sender is configured
func (cfg *ApplicationConfig) Mailer() notify.Mailer {
	return cfg.mailer
}

//NewApplicationConfig loads config values from environment and initialises config
func NewApplicationConfig() (*ApplicationConfig, error) {
	envValues := NewEnvironmentConfig()

	switch strings.ToLower(envValues.AuthMode) {
	case AuthModeRemote, AuthModeLocal:
		envValues.AuthMode = strings.ToLower(envValues.AuthMode)
	default:
		return nil, fmt.Errorf("config: AUTH_MODE must be %q or %q, got %q", AuthModeRemote, AuthModeLocal, envValues.AuthMode)
	}
	if envValues.AuthMode == AuthModeLocal && envValues.JWTSecret == "" {
		return nil, fmt.Errorf("config: AUTH_MODE=local requires JWT_SECRET")
	}

	var mailer notify.Mailer = notify.LogMailer{}
	if envValues.EmailFrom != "" {
		sess, err := session.NewSession(aws.NewConfig().WithRegion(envValues.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("config: aws session: %w", err)
		}
		mailer = notify.NewSESMailer(ses.New(sess), envValues.EmailFrom)
	}

	return &ApplicationConfig{
		envValues:   envValues,
		httpCommand: NewHTTPCommand(envValues.HTTPTimeout, envValues.RateLimitPerSecond),
		mailer:      mailer,
	}, nil
}

// NewHTTPCommand returns the HTTP client. A non-positive perSecond disables
// the outgoing rate limit.
func NewHTTPCommand(timeout time.Duration, perSecond int) customhttp.HTTPCommand {
	var limiter *rate.Limiter
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}

	httpCommand := customhttp.New(
		customhttp.WithHTTPClient(&http.Client{Timeout: timeout}),
		customhttp.WithRateLimit(limiter),
	).Build()

	return httpCommand
}
