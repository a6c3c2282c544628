package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/yndnr/medqueue-go/internal/cli/connection"
	"github.com/yndnr/medqueue-go/internal/core/domain"
	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
	"github.com/yndnr/medqueue-go/internal/telemetry/metric"
	"github.com/yndnr/medqueue-go/pkg/token"
)

// Default failure messages when the server sends no "error" field.
const (
	DefaultLoginError          = "Login failed"
	DefaultSignupError         = "Signup failed"
	DefaultForgotPasswordError = "Failed to send verification code"
	DefaultResetPasswordError  = "Password reset failed"
)

// API paths, relative to the base URL.
const (
	PathLogin          = "/auth/login"
	PathSignup         = "/auth/signup"
	PathLogout         = "/auth/logout"
	PathMe             = "/auth/me"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
	PathAdminAccess    = "/admin/access"
)

var errMissingToken = errors.New("response has no token")

// Transport sends one API request.
type Transport interface {
	Do(ctx context.Context, method, path string, header http.Header, body any) (*http.Response, error)
}

// TokenStore holds the bearer token.
type TokenStore interface {
	Get() (string, bool)
	Save(token string, remember bool) error
	Remove() error
}

// Client performs session operations against the API.
type Client struct {
	transport Transport
	store     TokenStore
	logger    logger.Logger
	metrics   *metric.Registry
	remember  bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics counts operations into r.
func WithMetrics(r *metric.Registry) Option {
	return func(c *Client) { c.metrics = r }
}

// WithRemember chooses the tier a login or signup token is saved to.
// true (the default) writes the durable tier.
func WithRemember(remember bool) Option {
	return func(c *Client) { c.remember = remember }
}

// New creates a session client.
func New(transport Transport, store TokenStore, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		store:     store,
		logger:    logger.Discard(),
		remember:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the stored token, if any.
func (c *Client) Token() (string, bool) {
	return c.store.Get()
}

// IsAuthenticated reports whether a token is stored.
func (c *Client) IsAuthenticated() bool {
	_, ok := c.store.Get()
	return ok
}

// BuildAuthHeaders returns the JSON content type plus a bearer
// Authorization header when a token is stored.
func (c *Client) BuildAuthHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if t, ok := c.store.Get(); ok {
		h.Set("Authorization", "Bearer "+t)
	}
	return h
}

func jsonHeader() http.Header {
	return http.Header{"Content-Type": []string{"application/json"}}
}

func bearerHeader(t string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + t}}
}

// CurrentUser fetches the signed-in user. Any failure, including having
// no token, is reported as absent.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, bool) {
	const op = "current_user"

	t, ok := c.store.Get()
	if !ok {
		c.observe(op, metric.OutcomeSkipped)
		return nil, false
	}

	resp, err := c.transport.Do(ctx, http.MethodGet, PathMe, bearerHeader(t), nil)
	if err != nil {
		c.logger.Warn("get current user failed", "error", err)
		c.observe(op, string(domain.KindNetwork))
		return nil, false
	}
	defer resp.Body.Close()

	if !connection.IsSuccess(resp.StatusCode) {
		c.logger.Debug("get current user rejected", "status", resp.StatusCode)
		c.observe(op, string(domain.KindRejected))
		return nil, false
	}

	var payload struct {
		User domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.User.IsZero() {
		c.logger.Warn("get current user: unusable response", "status", resp.StatusCode, "error", err)
		c.observe(op, string(domain.KindMalformed))
		return nil, false
	}

	c.observe(op, metric.OutcomeSuccess)
	return payload.User, true
}

// Login authenticates with email and password and stores the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	return c.authenticate(ctx, "login", PathLogin, body, DefaultLoginError)
}

// Signup registers a new account and stores the issued token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (domain.User, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	return c.authenticate(ctx, "signup", PathSignup, body, DefaultSignupError)
}

// authenticate runs login or signup. The token is written only after the
// whole answer has been validated.
func (c *Client) authenticate(ctx context.Context, op, path string, body any, fallback string) (domain.User, error) {
	resp, err := c.transport.Do(ctx, http.MethodPost, path, jsonHeader(), body)
	if err != nil {
		return nil, c.fail(op, domain.NewNetworkError(err))
	}

	if !connection.IsSuccess(resp.StatusCode) {
		return nil, c.fail(op, rejected(resp, fallback))
	}
	defer resp.Body.Close()

	var payload struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, c.fail(op, domain.NewMalformedError(resp.StatusCode, fallback, err))
	}
	if payload.Token == "" {
		return nil, c.fail(op, domain.NewMalformedError(resp.StatusCode, fallback, errMissingToken))
	}

	if err := c.store.Save(payload.Token, c.remember); err != nil {
		c.observe(op, "storage")
		return nil, domain.ErrStorageWrite.WithCause(err)
	}

	c.logger.Info("session started",
		"operation", op,
		"fingerprint", token.Fingerprint(payload.Token),
		"remember", c.remember)
	c.observe(op, metric.OutcomeSuccess)
	return payload.User, nil
}

// Logout asks the server to end the session, then clears the local token.
// The server call is best effort; the local clear always runs. The
// returned error reports only a failure to clear local storage.
func (c *Client) Logout(ctx context.Context) error {
	const op = "logout"

	if t, ok := c.store.Get(); ok {
		resp, err := c.transport.Do(ctx, http.MethodPost, PathLogout, bearerHeader(t), nil)
		if err != nil {
			c.logger.Warn("logout request failed", "error", err)
		} else {
			if !connection.IsSuccess(resp.StatusCode) {
				c.logger.Debug("logout rejected by server", "status", resp.StatusCode)
			}
			resp.Body.Close()
		}
	}

	if err := c.store.Remove(); err != nil {
		c.observe(op, "storage")
		return fmt.Errorf("logout: %w", err)
	}
	c.observe(op, metric.OutcomeSuccess)
	return nil
}

// ForgotPassword requests a reset code for email and returns the
// verification code the server sends back.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	const op = "forgot_password"

	resp, err := c.transport.Do(ctx, http.MethodPost, PathForgotPassword, jsonHeader(),
		map[string]string{"email": email})
	if err != nil {
		return "", c.fail(op, domain.NewNetworkError(err))
	}
	if !connection.IsSuccess(resp.StatusCode) {
		return "", c.fail(op, rejected(resp, DefaultForgotPasswordError))
	}
	defer resp.Body.Close()

	var payload struct {
		VerificationCode string `json:"verification_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", c.fail(op, domain.NewMalformedError(resp.StatusCode, DefaultForgotPasswordError, err))
	}

	c.observe(op, metric.OutcomeSuccess)
	return payload.VerificationCode, nil
}

// ResetPassword sets a new password using a verification code.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	const op = "reset_password"

	body := map[string]string{
		"email":        email,
		"code":         code,
		"new_password": newPassword,
	}
	resp, err := c.transport.Do(ctx, http.MethodPost, PathResetPassword, jsonHeader(), body)
	if err != nil {
		return c.fail(op, domain.NewNetworkError(err))
	}
	if !connection.IsSuccess(resp.StatusCode) {
		return c.fail(op, rejected(resp, DefaultResetPasswordError))
	}
	resp.Body.Close()

	c.observe(op, metric.OutcomeSuccess)
	return nil
}

// CheckAdminAccess reports whether the server grants admin access.
// It fails closed: no token, a transport error, a non-2xx status or an
// unreadable body all mean false. Without a token no request is made.
func (c *Client) CheckAdminAccess(ctx context.Context) bool {
	const op = "check_admin"

	t, ok := c.store.Get()
	if !ok {
		c.observe(op, metric.OutcomeSkipped)
		return false
	}

	resp, err := c.transport.Do(ctx, http.MethodGet, PathAdminAccess, bearerHeader(t), nil)
	if err != nil {
		c.logger.Warn("check admin access failed", "error", err)
		c.observe(op, string(domain.KindNetwork))
		return false
	}
	defer resp.Body.Close()

	if !connection.IsSuccess(resp.StatusCode) {
		c.observe(op, string(domain.KindRejected))
		return false
	}

	var payload struct {
		HasAccess bool `json:"has_access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("check admin access: unusable response", "error", err)
		c.observe(op, string(domain.KindMalformed))
		return false
	}

	c.observe(op, metric.OutcomeSuccess)
	return payload.HasAccess
}

func rejected(resp *http.Response, fallback string) *domain.AuthError {
	re := connection.DecodeError(resp, "")
	return domain.NewRejectedError(re.Status, re.Message, fallback)
}

func (c *Client) fail(op string, err *domain.AuthError) error {
	c.logger.Debug("session operation failed",
		"operation", op,
		"kind", err.Kind,
		"status", err.Status,
		"error", err.Cause)
	c.observe(op, string(err.Kind))
	return err
}

func (c *Client) observe(op, outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveSession(op, outcome)
	}
}
