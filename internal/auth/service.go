// Package auth signs users in against the remote auth service or a local
// user directory, and serves the login, register and password pages.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/customhttp"
	"github.com/syrilster/school-leave-console/internal/gateway"
	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/session"
	"github.com/syrilster/school-leave-console/internal/validation"
)

// PasswordResetter starts the password reset of an account.
type PasswordResetter interface {
	ForgotPassword(ctx context.Context, email string) error
}

type tokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// Service is the remote auth collaborator: POST /login, /register and
// /forgot-password on AUTH_ENDPOINT.
type Service struct {
	endpoint string
	client   customhttp.HTTPCommand
}

func NewAuthService(endpoint string, client customhttp.HTTPCommand) *Service {
	return &Service{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   client,
	}
}

func (service Service) Authenticate(ctx context.Context, creds model.Credentials) (string, error) {
	var resp tokenResponse
	status, err := service.post(ctx, "Login", "/login", creds, &resp)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnauthorized, status == http.StatusForbidden, status == http.StatusNotFound:
		return "", session.ErrInvalidCredentials
	case status >= http.StatusMultipleChoices:
		return "", &gateway.NetworkError{Op: "Login", StatusCode: status}
	}
	return resp.Token, nil
}

func (service Service) Register(ctx context.Context, reg model.Registration) (string, error) {
	var resp tokenResponse
	status, err := service.post(ctx, "Register", "/register", reg, &resp)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusConflict:
		return "", &validation.Error{Fields: map[string]string{"email": "Email is already registered"}}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		msg := resp.Message
		if msg == "" {
			msg = "Registration was rejected"
		}
		return "", &validation.Error{Fields: map[string]string{"form": msg}}
	case status >= http.StatusMultipleChoices:
		return "", &gateway.NetworkError{Op: "Register", StatusCode: status}
	}
	return resp.Token, nil
}

func (service Service) ForgotPassword(ctx context.Context, email string) error {
	status, err := service.post(ctx, "ForgotPassword", "/forgot-password", map[string]string{"email": email}, nil)
	if err != nil {
		return err
	}
	if status >= http.StatusMultipleChoices {
		return &gateway.NetworkError{Op: "ForgotPassword", StatusCode: status}
	}
	return nil
}

// post returns the response status. Transport failures come back as
// *gateway.NetworkError; the body is decoded into out when it is JSON.
func (service Service) post(ctx context.Context, op string, path string, body interface{}, out interface{}) (int, error) {
	ctxLogger := log.WithContext(ctx).WithField("op", op)

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("auth: marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, service.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		ctxLogger.WithError(err).Error("could not create HTTP request")
		return 0, &gateway.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := service.client.Do(req)
	if err != nil {
		ctxLogger.WithError(err).Error("could not send HTTP request")
		return 0, &gateway.NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		ctxLogger.Infof("status returned from auth service is %s", res.Status)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil && res.StatusCode < http.StatusMultipleChoices {
			// an unreadable success answer carries no token
			ctxLogger.WithError(err).Error("could not parse JSON response")
			return 0, session.ErrInvalidCredentials
		}
	}
	return res.StatusCode, nil
}
