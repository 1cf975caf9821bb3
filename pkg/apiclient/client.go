// Package apiclient is a typed Go client for the dashboard API. The
// board screens use it as the remote half of a board.Mover.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/pkg/board"
)

// Client talks to one dashboard API server
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given server base URL (without the
// /api/v1 prefix)
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on every request
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx response decoded from the server's error body
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+"/api/v1"+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Tasks

func (c *Client) ListTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := c.do(http.MethodGet, "/tasks/", nil, &tasks)
	return tasks, err
}

func (c *Client) TaskBoard() ([]board.Column[models.Task], error) {
	var columns []board.Column[models.Task]
	err := c.do(http.MethodGet, "/tasks/board", nil, &columns)
	return columns, err
}

func (c *Client) CreateTask(req *models.CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(http.MethodPost, "/tasks/", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) MoveTask(id uuid.UUID, targetStatus string) (models.Task, error) {
	var task models.Task
	err := c.do(http.MethodPatch, "/tasks/"+id.String()+"/move",
		map[string]string{"status": targetStatus}, &task)
	return task, err
}

// TaskMover adapts the client for board.CompleteDrag
func (c *Client) TaskMover() board.Mover[models.Task] {
	return c.MoveTask
}

// Appointments

func (c *Client) ListAppointments() ([]models.Appointment, error) {
	var appts []models.Appointment
	err := c.do(http.MethodGet, "/appointments/", nil, &appts)
	return appts, err
}

func (c *Client) AppointmentBoard() ([]board.Column[models.Appointment], error) {
	var columns []board.Column[models.Appointment]
	err := c.do(http.MethodGet, "/appointments/board", nil, &columns)
	return columns, err
}

func (c *Client) CreateAppointment(req *models.CreateAppointmentRequest) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(http.MethodPost, "/appointments/", req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (c *Client) MoveAppointment(id uuid.UUID, targetStatus string) (models.Appointment, error) {
	var appt models.Appointment
	err := c.do(http.MethodPatch, "/appointments/"+id.String()+"/move",
		map[string]string{"status": targetStatus}, &appt)
	return appt, err
}

// AppointmentMover adapts the client for board.CompleteDrag
func (c *Client) AppointmentMover() board.Mover[models.Appointment] {
	return c.MoveAppointment
}

// Reservations

func (c *Client) ListReservations() ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := c.do(http.MethodGet, "/reservations/", nil, &reservations)
	return reservations, err
}

func (c *Client) ReservationBoard() ([]board.Column[models.Reservation], error) {
	var columns []board.Column[models.Reservation]
	err := c.do(http.MethodGet, "/reservations/board", nil, &columns)
	return columns, err
}

func (c *Client) CreateReservation(req *models.CreateReservationRequest) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := c.do(http.MethodPost, "/reservations/", req, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (c *Client) MoveReservation(id uuid.UUID, targetStatus string) (models.Reservation, error) {
	var reservation models.Reservation
	err := c.do(http.MethodPatch, "/reservations/"+id.String()+"/move",
		map[string]string{"status": targetStatus}, &reservation)
	return reservation, err
}

// ReservationMover adapts the client for board.CompleteDrag
func (c *Client) ReservationMover() board.Mover[models.Reservation] {
	return c.MoveReservation
}

// Route returns the route the dashboard should land on for the
// current session
func (c *Client) Route() (string, error) {
	var resp struct {
		Route string `json:"route"`
	}
	if err := c.do(http.MethodGet, "/clients/me/route", nil, &resp); err != nil {
		return "", err
	}
	return resp.Route, nil
}
