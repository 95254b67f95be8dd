package customhttp

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const RequestIDHeader = "X-Request-ID"

type middleware func(next httpCommandFunc) httpCommandFunc

func chainMiddleware(m ...middleware) middleware {
	return func(final httpCommandFunc) httpCommandFunc {
		last := final
		for i := len(m) - 1; i >= 0; i-- {
			last = m[i](last)
		}

		return func(req *http.Request) (resp *http.Response, err error) {
			return last(req)
		}
	}
}

func requestIDMiddleware() middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (resp *http.Response, err error) {
			if req.Header.Get(RequestIDHeader) == "" {
				req.Header.Set(RequestIDHeader, uuid.NewString())
			}
			return next(req)
		}
	}
}

func rateLimitMiddleware(limiter *rate.Limiter) middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (resp *http.Response, err error) {
			if err := limiter.Wait(req.Context()); err != nil {
				return nil, err
			}
			return next(req)
		}
	}
}

func loggingMiddleware() middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (resp *http.Response, err error) {
			start := time.Now()
			resp, err = next(req)

			entry := log.WithContext(req.Context()).WithFields(log.Fields{
				"method":     req.Method,
				"url":        req.URL.String(),
				"request_id": req.Header.Get(RequestIDHeader),
				"elapsed":    time.Since(start).String(),
			})
			if err != nil {
				entry.WithError(err).Debug("backend call failed")
				return resp, err
			}
			entry.WithField("status", resp.StatusCode).Debug("backend call")
			return resp, nil
		}
	}
}
