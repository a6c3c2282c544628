package resource

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yndnr/medqueue-go/internal/cli/connection"
)

// DefaultPriority is the queue priority used when none is given.
const DefaultPriority = 5

// Object is a decoded JSON response body.
type Object = map[string]any

// Transport sends one API request.
type Transport interface {
	Do(ctx context.Context, method, path string, header http.Header, body any) (*http.Response, error)
}

// HeaderProvider builds request headers for the current session.
type HeaderProvider interface {
	BuildAuthHeaders() http.Header
}

// Client calls the clinic resource endpoints.
type Client struct {
	transport Transport
	headers   HeaderProvider
}

// New creates a resource client.
func New(transport Transport, headers HeaderProvider) *Client {
	return &Client{transport: transport, headers: headers}
}

// Patients lists all patients.
func (c *Client) Patients(ctx context.Context) (Object, error) {
	return c.call(ctx, http.MethodGet, "/patients", nil, true)
}

// CreatePatient registers a patient.
func (c *Client) CreatePatient(ctx context.Context, data Object) (Object, error) {
	return c.call(ctx, http.MethodPost, "/patients", data, true)
}

// Patient fetches one patient.
func (c *Client) Patient(ctx context.Context, id string) (Object, error) {
	return c.call(ctx, http.MethodGet, "/patients/"+url.PathEscape(id), nil, true)
}

// SearchPatients finds patients matching query.
func (c *Client) SearchPatients(ctx context.Context, query string) (Object, error) {
	return c.call(ctx, http.MethodGet, "/patients/search?q="+url.QueryEscape(query), nil, true)
}

// Doctors lists all doctors. Sent without credentials.
func (c *Client) Doctors(ctx context.Context) (Object, error) {
	return c.call(ctx, http.MethodGet, "/doctors", nil, false)
}

// Doctor fetches one doctor. Sent without credentials.
func (c *Client) Doctor(ctx context.Context, id string) (Object, error) {
	return c.call(ctx, http.MethodGet, "/doctors/"+url.PathEscape(id), nil, false)
}

// Queue returns the current queue.
func (c *Client) Queue(ctx context.Context) (Object, error) {
	return c.call(ctx, http.MethodGet, "/queue", nil, true)
}

// AddToQueue enqueues a patient. Callers without a priority of their own
// pass DefaultPriority.
func (c *Client) AddToQueue(ctx context.Context, patientID string, emergency bool, priority int) (Object, error) {
	body := Object{
		"patient_id":   patientID,
		"is_emergency": emergency,
		"priority":     priority,
	}
	return c.call(ctx, http.MethodPost, "/queue/add", body, true)
}

// NextPatient pops the next patient to be seen.
func (c *Client) NextPatient(ctx context.Context) (Object, error) {
	return c.call(ctx, http.MethodPost, "/queue/next", nil, true)
}

// AssignPatients asks the scheduler to assign queued patients to doctors.
func (c *Client) AssignPatients(ctx context.Context) (Object, error) {
	return c.call(ctx, http.MethodPost, "/scheduler/assign", nil, true)
}

// DashboardStats returns the dashboard counters.
func (c *Client) DashboardStats(ctx context.Context) (Object, error) {
	return c.call(ctx, http.MethodGet, "/dashboard/stats", nil, true)
}

// Health checks that the API is up.
func (c *Client) Health(ctx context.Context) (Object, error) {
	return c.call(ctx, http.MethodGet, "/health", nil, false)
}

func (c *Client) call(ctx context.Context, method, path string, body any, authed bool) (Object, error) {
	var header http.Header
	if authed {
		header = c.headers.BuildAuthHeaders()
	}

	resp, err := c.transport.Do(ctx, method, path, header, body)
	if err != nil {
		return nil, err
	}

	var out Object
	if err := connection.ParseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}
