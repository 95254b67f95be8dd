package middlewares

import (
	"net/http"

	"github.com/syrilster/school-leave-console/internal/util"
)

type healthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// RuntimeHealthCheck reports liveness and whether an operator is signed in.
func RuntimeHealthCheck(version string, authenticated func() bool) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WithBodyAndStatus(healthStatus{
			Status:        "All OK",
			Version:       version,
			Authenticated: authenticated != nil && authenticated(),
		}, http.StatusOK, w)
	}
}
