// Package graphql adapts go-graphql-client to the commerce and subscription platform clients.
package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cancel-saga/internal/infra"

	gql "github.com/hasura/go-graphql-client"
)

type Client struct {
	platform string
	gql      *gql.Client
	timeout  time.Duration
}

// NewClient builds a client for one endpoint. A non-positive timeout leaves the deadline to ctx.
func NewClient(platform, endpoint string, headers map[string]string, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := gql.NewClient(endpoint, httpClient).WithRequestModifier(func(r *http.Request) {
		r.Header.Set("Accept", "application/json")
		for k, v := range headers {
			r.Header.Set(k, v)
		}
	})
	return &Client{platform: platform, gql: c, timeout: timeout}
}

// UserError is the mutation-level validation error shape both platforms return.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// Do runs one operation and decodes its data into out. Values derived from user input must be passed
// in vars, never interpolated into query.
func (c *Client) Do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	data, err := c.gql.ExecRaw(ctx, query, vars)
	if err != nil {
		if ctx.Err() != nil {
			return infra.NewUpstreamErr(c.platform, op, "", ctx.Err())
		}
		return infra.NewUpstreamErr(c.platform, op, kindFor(err), err)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return infra.NewUpstreamErr(c.platform, op, infra.KindUpstreamUnavailable, fmt.Errorf("failed to decode data: %w", err))
	}
	return nil
}

// CheckUserErrors converts a non-empty userErrors list into an upstream error.
func (c *Client) CheckUserErrors(op string, errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	kind := infra.KindUpstreamRejected
	for _, e := range errs {
		msgs = append(msgs, e.Message)
		if looksLikeNotFound(e.Message) {
			kind = infra.KindUpstreamNotFound
		}
	}
	return infra.NewUpstreamErr(c.platform, op, kind, fmt.Errorf("user errors: %s", strings.Join(msgs, "; ")))
}

// kindFor maps transport failures and GraphQL error codes onto upstream error kinds.
func kindFor(err error) infra.UpstreamErrorKind {
	var list gql.Errors
	if !errors.As(err, &list) {
		return infra.KindUpstreamUnavailable
	}
	for _, e := range list {
		var netErr gql.NetworkError
		if errors.As(e, &netErr) {
			return kindForStatus(netErr.StatusCode())
		}

		code, _ := e.Extensions["code"].(string)
		switch code {
		case gql.ErrRequestError, gql.ErrJsonDecode:
			return infra.KindUpstreamUnavailable
		}
		switch strings.ToUpper(code) {
		case "THROTTLED", "INTERNAL_SERVER_ERROR":
			return infra.KindUpstreamUnavailable
		case "NOT_FOUND":
			return infra.KindUpstreamNotFound
		}
	}
	return infra.KindUpstreamRejected
}

func kindForStatus(code int) infra.UpstreamErrorKind {
	switch {
	case code == http.StatusNotFound:
		return infra.KindUpstreamNotFound
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return infra.KindUpstreamUnavailable
	default:
		return infra.KindUpstreamRejected
	}
}

func looksLikeNotFound(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "not found") || strings.Contains(m, "does not exist")
}
