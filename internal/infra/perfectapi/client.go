package perfectapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"perfect-widget/internal/domain/reservation"
	"perfect-widget/internal/pkg/config"
	"perfect-widget/internal/pkg/errs"
	"perfect-widget/internal/usecase"
)

const (
	HeaderAPIKey     = "X-Perfect-API-Key"
	HeaderAPIVersion = "X-Perfect-API-Version"

	maxErrorBody = 512
)

// Client talks to the public restaurant endpoints of the Perfect API. It
// implements usecase.Authenticator, usecase.AvailabilityClient and
// usecase.BookingClient.
type Client struct {
	hc       *http.Client
	base     string
	apiKey   string
	protocol Protocol
	logger   *slog.Logger
}

var (
	_ usecase.Authenticator      = (*Client)(nil)
	_ usecase.AvailabilityClient = (*Client)(nil)
	_ usecase.BookingClient      = (*Client)(nil)
)

func NewClient(cfg config.PerfectConfig, logger *slog.Logger) (*Client, error) {
	protocol, err := ProtocolFor(cfg.Version)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errs.New("PERFECT_API_URL is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		hc:       &http.Client{Timeout: cfg.RequestTimeout},
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		protocol: protocol,
		logger:   logger,
	}, nil
}

func (c *Client) Protocol() Protocol {
	return c.protocol
}

func (c *Client) Authenticate(ctx context.Context) (usecase.Restaurant, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/auth", "", nil)
	if err != nil {
		return usecase.Restaurant{}, errs.Mark(err, errs.ErrAuthFailed)
	}
	if !isSuccess(status) {
		return usecase.Restaurant{}, errs.Mark(statusError("auth", status, body), errs.ErrAuthFailed)
	}

	var restaurant usecase.Restaurant
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &restaurant); err != nil {
			// identity payload is informational; a 2xx is what authorises the key
			c.logger.Debug("perfect api: unreadable auth payload", "error", err)
		}
	}
	return restaurant, nil
}

func (c *Client) FetchPartySizes(ctx context.Context) ([]int, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/reservations/partySizes", "", nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTransport)
	}
	if !isSuccess(status) {
		return nil, errs.Mark(statusError("party sizes", status, body), errs.ErrTransport)
	}
	var sizes []int
	if err := json.Unmarshal(body, &sizes); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode party sizes"), errs.ErrTransport)
	}
	return sizes, nil
}

func (c *Client) FetchAvailableTimes(ctx context.Context, partySize int, date time.Time) ([]reservation.SlotID, error) {
	status, body, err := c.do(ctx, http.MethodGet, AvailableTimesPath(partySize, date), "", nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTransport)
	}
	if !isSuccess(status) {
		return nil, errs.Mark(statusError("available times", status, body), errs.ErrTransport)
	}
	slots, err := c.protocol.DecodeTimes(body)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTransport)
	}
	return slots, nil
}

func (c *Client) CreateReservation(ctx context.Context, booking reservation.Booking) (string, error) {
	contentType, payload, err := c.protocol.EncodeBooking(booking)
	if err != nil {
		return "", errs.Mark(err, errs.ErrBookingRejected)
	}
	status, body, err := c.do(ctx, http.MethodPost, "/reservations", contentType, payload)
	if err != nil {
		return "", errs.Mark(err, errs.ErrBookingRejected)
	}
	if !isSuccess(status) {
		return "", errs.Mark(statusError("create reservation", status, body), errs.ErrBookingRejected)
	}
	return reservationID(body), nil
}

// AvailableTimesPath builds /reservations/availableTimes/{party}/{y}/{m}/{d}
// with unpadded month and day.
func AvailableTimesPath(partySize int, date time.Time) string {
	return fmt.Sprintf("/reservations/availableTimes/%d/%d/%d/%d",
		partySize, date.Year(), int(date.Month()), date.Day())
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, nil, errs.Wrap(err, "build perfect api request")
	}
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set(HeaderAPIVersion, c.protocol.Version())
	req.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		c.logger.Warn("perfect api: request failed", "method", method, "path", path, "error", err)
		return 0, nil, errs.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, errs.Wrapf(err, "read %s %s", method, path)
	}
	c.logger.Debug("perfect api: request completed",
		"method", method,
		"path", path,
		"status_code", res.StatusCode,
		"duration", time.Since(started),
	)
	return res.StatusCode, b, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func statusError(op string, status int, body []byte) error {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxErrorBody {
		snippet = snippet[:maxErrorBody]
	}
	if snippet == "" {
		return errs.Newf("perfect api %s: http %d", op, status)
	}
	return errs.Newf("perfect api %s: http %d: %s", op, status, snippet)
}

// reservationID extracts the identifier from a create response. An empty or
// unrecognised body yields "".
func reservationID(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"id", "_id", "reservationId"} {
		if v, ok := payload[key]; ok && v != nil {
			switch id := v.(type) {
			case string:
				return id
			case float64:
				return fmt.Sprintf("%.0f", id)
			default:
				return fmt.Sprint(id)
			}
		}
	}
	return ""
}
