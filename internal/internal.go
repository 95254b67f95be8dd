package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/auth"
	"github.com/syrilster/school-leave-console/internal/config"
	"github.com/syrilster/school-leave-console/internal/customhttp"
	"github.com/syrilster/school-leave-console/internal/dashboard"
	"github.com/syrilster/school-leave-console/internal/employee"
	"github.com/syrilster/school-leave-console/internal/gateway"
	"github.com/syrilster/school-leave-console/internal/guard"
	"github.com/syrilster/school-leave-console/internal/leave"
	"github.com/syrilster/school-leave-console/internal/middlewares"
	"github.com/syrilster/school-leave-console/internal/notify"
	"github.com/syrilster/school-leave-console/internal/session"
)

//StatusRoute health check route
func StatusRoute(version string, s guard.Session) (route config.Route) {
	route = config.Route{
		Path:    "/health",
		Method:  http.MethodGet,
		Access:  guard.Public,
		Handler: middlewares.RuntimeHealthCheck(version, s.IsAuthenticated),
	}
	return route
}

// HomeRoute sends the console root to the dashboard.
func HomeRoute() config.Route {
	return config.Route{
		Path:   "/",
		Method: http.MethodGet,
		Access: guard.Public,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, guard.DashboardPath, http.StatusSeeOther)
		},
	}
}

type ServerConfig interface {
	Version() string
	EmployeeAPIURL() string
	LeaveAPIURL() string
	AuthMode() string
	AuthEndpoint() string
	UserDirectoryFile() string
	JWTSecret() string
	TokenTTL() time.Duration
	TokenFileLocation() string
	EmailTo() []string
	EmployeePageSize() int
	LeavePageSize() int
	AllowedOrigins() []string
	HTTPCommand() customhttp.HTTPCommand
	Mailer() notify.Mailer
}

type authenticator interface {
	session.Authenticator
	auth.PasswordResetter
}

func newAuthenticator(cfg ServerConfig) (authenticator, error) {
	if cfg.AuthMode() == config.AuthModeLocal {
		return auth.LoadDirectory(cfg.UserDirectoryFile(), cfg.JWTSecret(), cfg.TokenTTL(), cfg.Mailer())
	}
	return auth.NewAuthService(cfg.AuthEndpoint(), cfg.HTTPCommand()), nil
}

// SetupServer wires the session store, the backend gateway and every console view.
func SetupServer(ctx context.Context, cfg ServerConfig) (*config.Server, error) {
	authn, err := newAuthenticator(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup auth: %w", err)
	}

	store := session.NewStore(authn, session.NewFileTokenStore(cfg.TokenFileLocation()), session.NewDecoder(cfg.JWTSecret()))
	if err := store.Restore(ctx); err != nil {
		log.WithContext(ctx).WithError(err).Warn("persisted session discarded")
	}

	backend := gateway.NewClient(cfg.EmployeeAPIURL(), cfg.LeaveAPIURL(), cfg.HTTPCommand(), store)
	employeeService := employee.NewService(backend, cfg.EmployeePageSize())
	leaveService := leave.NewService(backend, store, cfg.LeavePageSize(),
		leave.WithNotifications(cfg.Mailer(), cfg.EmailTo()))
	dashboardService := dashboard.NewService(backend, backend, store)

	routes := []config.Route{StatusRoute(cfg.Version(), store), HomeRoute(), dashboard.Route(dashboardService)}
	routes = append(routes, auth.Routes(store, authn)...)
	routes = append(routes, employee.Routes(employeeService)...)
	routes = append(routes, leave.Routes(leaveService)...)

	server := config.NewServer(
		config.WithSession(store),
		config.WithAllowedOrigins(cfg.AllowedOrigins()),
	).WithRoutes("", routes...)
	return server, nil
}
