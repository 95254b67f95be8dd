package config

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/guard"
)

// Route is one console endpoint and the access level it requires.
type Route struct {
	Path    string
	Method  string
	Access  guard.Access
	Handler http.HandlerFunc
}

// Server defines the server struct
type Server struct {
	router         *mux.Router
	session        guard.Session
	allowedOrigins []string
}

type ServerConfigOption func(server *Server)

// WithSession sets the session every route is guarded against.
func WithSession(s guard.Session) ServerConfigOption {
	return func(server *Server) {
		server.session = s
	}
}

// WithAllowedOrigins limits the browser origins that may call the console.
// "*" allows every origin.
func WithAllowedOrigins(origins []string) ServerConfigOption {
	return func(server *Server) {
		server.allowedOrigins = origins
	}
}

//NewServer creates a new server
func NewServer(options ...ServerConfigOption) *Server {
	s := &Server{
		router:         mux.NewRouter().StrictSlash(true),
		allowedOrigins: []string{DefaultConsoleOrigin},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithRoutes registers routes behind the route guard.
func (s *Server) WithRoutes(basePath string, routes ...Route) *Server {
	sub := s.router.PathPrefix(basePath).Subrouter()
	for _, route := range routes {
		sub.HandleFunc(route.Path, guard.Middleware(s.session, route.Access, route.Handler)).Methods(route.Method)
		log.WithFields(map[string]interface{}{
			"method": route.Method,
			"path":   fmt.Sprintf("%s%s", basePath, route.Path),
			"access": route.Access.String(),
		}).Infof("registered path")
	}
	return s
}

// Handler returns the router wrapped with CORS, access logging and panic recovery.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedHeaders:   []string{"Access-Control-Allow-Origin", "Content-Type", "Origin", "Accept-Encoding", "Accept-Language", "Authorization", ConsoleRequestHeader},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS", "DELETE"},
		AllowCredentials: true,
	})
	handler := c.Handler(consoleWritesOnly(s.allowedOrigins, s.router))
	handler = handlers.CombinedLoggingHandler(log.StandardLogger().Writer(), handler)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
}

//Start the server on the defined port
func (s *Server) Start(addr string, port int) {
	panic(
		http.ListenAndServe(
			fmt.Sprintf("%s:%v", addr, port),
			s.Handler()),
	)
}
