package auth

import (
	"net/http"

	"github.com/syrilster/school-leave-console/internal/config"
	"github.com/syrilster/school-leave-console/internal/guard"
)

func Routes(s Session, resetter PasswordResetter) []config.Route {
	return []config.Route{
		{Path: guard.LoginPath, Method: http.MethodGet, Access: guard.Public, Handler: SessionHandler(s)},
		{Path: guard.LoginPath, Method: http.MethodPost, Access: guard.Public, Handler: LoginHandler(s)},
		{Path: "/session", Method: http.MethodGet, Access: guard.Public, Handler: SessionHandler(s)},
		{Path: "/logout", Method: http.MethodPost, Access: guard.Public, Handler: LogoutHandler(s)},
		{Path: "/register", Method: http.MethodGet, Access: guard.GuestOnly, Handler: RegisterFormHandler()},
		{Path: "/register", Method: http.MethodPost, Access: guard.GuestOnly, Handler: RegisterHandler(s)},
		{Path: "/forgot-password", Method: http.MethodPost, Access: guard.Public, Handler: ForgotPasswordHandler(resetter)},
	}
}
