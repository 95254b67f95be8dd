// Package gateway talks to the REST backend that owns employees and leave requests.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/customhttp"
)

// TokenSource supplies the bearer token of the current session.
type TokenSource interface {
	Token() string
}

func NewClient(employeeURL string, leaveURL string, c customhttp.HTTPCommand, tokens TokenSource) *client {
	return &client{
		EmployeeURL: strings.TrimSuffix(employeeURL, "/"),
		LeaveURL:    strings.TrimSuffix(leaveURL, "/"),
		Client:      c,
		Tokens:      tokens,
	}
}

type client struct {
	EmployeeURL string
	LeaveURL    string
	Client      customhttp.HTTPCommand
	Tokens      TokenSource
}

// call sends one request and decodes the JSON answer into out (when out is not nil).
func (c *client) call(ctx context.Context, op string, method string, url string, body interface{}, out interface{}) error {
	contextLogger := log.WithContext(ctx).WithField("op", op)

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		payload = bytes.NewReader(b)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	httpRequest.Header.Set("Accept", "application/json")
	if body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			httpRequest.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.Client.Do(httpRequest)
	if err != nil {
		contextLogger.WithError(err).Errorf("there was an error calling the %s API", op)
		return &NetworkError{Op: op, Err: err}
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			contextLogger.WithError(err).Warn("error when closing response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		contextLogger.Infof("status returned from backend %s", resp.Status)
		return &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		contextLogger.WithError(err).Error("error reading backend response body")
		return &NetworkError{Op: op, Err: err}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		contextLogger.WithError(err).Errorf("there was an error un marshalling the %s resp", op)
		return &NetworkError{Op: op, Err: fmt.Errorf("there was an error un marshalling the %s resp. cause: %w", op, err)}
	}
	return nil
}
