package auth

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/guard"
	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/util"
)

const resetMessage = "A password reset link has been sent to your email."

// Session is the part of the session store the auth pages drive.
type Session interface {
	Login(ctx context.Context, creds model.Credentials) (model.Identity, error)
	Register(ctx context.Context, reg model.Registration) (model.Identity, error)
	Logout(ctx context.Context)
	Identity() (model.Identity, bool)
}

// SessionView tells the console who is signed in and where to go next.
type SessionView struct {
	Authenticated bool            `json:"authenticated"`
	User          *model.Identity `json:"user,omitempty"`
	Redirect      string          `json:"redirect,omitempty"`
}

type RegisterForm struct {
	MinPasswordLength int `json:"minPasswordLength"`
}

type MessageView struct {
	Message string `json:"message"`
}

func currentSession(s Session) SessionView {
	identity, ok := s.Identity()
	if !ok {
		return SessionView{}
	}
	return SessionView{Authenticated: true, User: &identity}
}

func SessionHandler(s Session) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		util.WithBodyAndStatus(currentSession(s), http.StatusOK, res)
	}
}

func LoginHandler(s Session) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var creds model.Credentials
		if !util.DecodeJSON(res, req, &creds) {
			return
		}
		if err := validateCredentials(creds); err != nil {
			util.WithError(ctx, err, "Login failed. Please try again.", res)
			return
		}

		identity, err := s.Login(ctx, creds)
		if err != nil {
			util.WithError(ctx, err, "Login failed. Please try again.", res)
			return
		}
		util.WithBodyAndStatus(SessionView{Authenticated: true, User: &identity, Redirect: guard.DashboardPath}, http.StatusOK, res)
	}
}

func LogoutHandler(s Session) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		s.Logout(req.Context())
		util.WithBodyAndStatus(SessionView{Redirect: guard.LoginPath}, http.StatusOK, res)
	}
}

func RegisterFormHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		util.WithBodyAndStatus(RegisterForm{MinPasswordLength: minPasswordLength}, http.StatusOK, res)
	}
}

func RegisterHandler(s Session) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var reg model.Registration
		if !util.DecodeJSON(res, req, &reg) {
			return
		}
		if err := validateRegistration(reg); err != nil {
			util.WithError(ctx, err, "Registration failed. Please try again.", res)
			return
		}

		identity, err := s.Register(ctx, reg)
		if err != nil {
			util.WithError(ctx, err, "Registration failed. Please try again.", res)
			return
		}
		util.WithBodyAndStatus(SessionView{Authenticated: true, User: &identity, Redirect: guard.DashboardPath}, http.StatusCreated, res)
	}
}

// ForgotPasswordHandler answers the same way whether or not the account exists.
func ForgotPasswordHandler(resetter PasswordResetter) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var body struct {
			Email string `json:"email"`
		}
		if !util.DecodeJSON(res, req, &body) {
			return
		}
		email := strings.TrimSpace(body.Email)
		if err := validateEmail(email); err != nil {
			util.WithError(ctx, err, "", res)
			return
		}

		if err := resetter.ForgotPassword(ctx, email); err != nil {
			log.WithContext(ctx).WithError(err).Error("password reset request failed")
		}
		util.WithBodyAndStatus(MessageView{Message: resetMessage}, http.StatusOK, res)
	}
}
