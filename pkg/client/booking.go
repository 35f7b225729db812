package client

import (
	"fmt"
	"net/url"
	"time"

	"bookly/pkg/model"
)

// BookingClient speaks the bookings API wire format.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// Login obtains a bearer token and attaches it to all later requests.
func (c *BookingClient) Login(username string) error {
	resp, err := c.httpClient.POST("/login", map[string]string{"username": username})
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("login failed with status %d: %s", resp.StatusCode, resp.Body)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return fmt.Errorf("could not decode login response: %w", err)
	}

	c.httpClient.AuthToken = body.Token
	return nil
}

func (c *BookingClient) Create(booking *model.Booking) (*Response, error) {
	return c.httpClient.POST("/bookings", booking)
}

func (c *BookingClient) GetAll() (*Response, error) {
	return c.httpClient.GET("/bookings")
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/bookings/" + url.PathEscape(id))
}

func (c *BookingClient) Update(id string, booking *model.Booking) (*Response, error) {
	return c.httpClient.PATCH("/bookings/"+url.PathEscape(id), booking)
}

func (c *BookingClient) Delete(id string) (*Response, error) {
	return c.httpClient.DELETE("/bookings/" + url.PathEscape(id))
}

func (c *BookingClient) WaitForHealthy(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}

// DecodeBooking unmarshals a single booking response body.
func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var booking model.Booking
	if err := resp.DecodeJSON(&booking); err != nil {
		return nil, fmt.Errorf("could not decode booking: %w (body: %s)", err, resp.Body)
	}
	return &booking, nil
}

// DecodeBookings unmarshals a list response body.
func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, error) {
	var bookings []*model.Booking
	if err := resp.DecodeJSON(&bookings); err != nil {
		return nil, fmt.Errorf("could not decode booking list: %w (body: %s)", err, resp.Body)
	}
	return bookings, nil
}

// DecodeError extracts the single error message every failure carries.
func (c *BookingClient) DecodeError(resp *Response) (string, error) {
	var body struct {
		Error string `json:"error"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return "", fmt.Errorf("could not decode error response: %w (body: %s)", err, resp.Body)
	}
	return body.Error, nil
}
