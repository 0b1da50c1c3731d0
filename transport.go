// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/icholy/digest"
	"github.com/tidwall/gjson"
)

// MaxBodyPreviewLength is the number of response bytes included in auth
// failure log lines
const MaxBodyPreviewLength = 200

// execute sends req and applies the auth retry policy.
//
// A 401 or 403 on the first attempt causes exactly one retry over a fresh
// connection after AuthRetryDelay. Every other outcome, including transport
// errors, is returned as-is.
func (c *Client) execute(ctx context.Context, req Req) rawResult {
	if err := checkContextCancellation(ctx); err != nil {
		return rawResult{transportErr: err.Error(), local: true}
	}

	raw := c.doRequest(ctx, req)
	if !raw.responded || !isAuthFailure(raw.httpCode) {
		return raw
	}

	c.logger.Warn(ctx, "Dinstar authentication failed, retrying with a fresh connection",
		"url", c.requestURL(req),
		"http_code", raw.httpCode,
		"user", c.username,
		"password", maskPassword(c.password),
		"body", bodyPreview(raw.rawBody),
		"delay", c.AuthRetryDelay.String())

	if err := sleepCtx(ctx, c.AuthRetryDelay); err != nil {
		raw.transportErr = err.Error()
		raw.retries = 0
		return raw
	}
	c.dropConnection()

	raw = c.doRequest(ctx, req)
	raw.retries = 1

	if raw.responded && isAuthFailure(raw.httpCode) {
		c.logger.Error(ctx, "Dinstar authentication failed after retry",
			"url", c.requestURL(req),
			"http_code", raw.httpCode,
			"user", c.username,
			"password", maskPassword(c.password),
			"body", bodyPreview(raw.rawBody))
	}
	return raw
}

// doRequest performs a single HTTP round trip and classifies the response
func (c *Client) doRequest(ctx context.Context, req Req) rawResult {
	var payload []byte
	if req.Method == http.MethodPost {
		b, err := req.Body.Bytes()
		if err != nil {
			c.logger.Error(ctx, "Dinstar request JSON encoding failed",
				"operation", req.operation(),
				"error", err.Error())
			return rawResult{transportErr: "JSON encoding failed: " + err.Error(), local: true}
		}
		payload = b
	}

	hc, err := c.httpClient()
	if err != nil {
		c.logger.Error(ctx, "Dinstar HTTP client initialization failed",
			"host", c.Host,
			"error", err.Error())
		return rawResult{transportErr: err.Error(), local: true}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.requestURL(req), body)
	if err != nil {
		c.logger.Error(ctx, "Dinstar request construction failed",
			"operation", req.operation(),
			"error", err.Error())
		return rawResult{transportErr: err.Error(), local: true}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Connection", "Keep-Alive")
	httpReq.Header.Set("Accept", "*/*")

	if payload != nil {
		c.logger.Debug(ctx, "Dinstar request",
			"method", req.Method,
			"url", c.requestURL(req),
			"body", c.prepareJSONForLogging(string(payload)))
	} else {
		c.logger.Debug(ctx, "Dinstar request",
			"method", req.Method,
			"url", c.requestURL(req))
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		c.logger.Error(ctx, "Dinstar transport error",
			"url", c.requestURL(req),
			"error", err.Error())
		return rawResult{transportErr: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	raw := rawResult{
		httpCode:  resp.StatusCode,
		responded: true,
	}
	is2xx := resp.StatusCode >= 200 && resp.StatusCode < 300

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if is2xx {
			c.logger.Error(ctx, "Dinstar response read failed",
				"url", c.requestURL(req),
				"http_code", resp.StatusCode,
				"error", err.Error())
			raw.transportErr = "read response body: " + err.Error()
			return raw
		}
		// the digest transport consumes unauthorized bodies
		c.logger.Debug(ctx, "Dinstar response body unavailable",
			"http_code", resp.StatusCode,
			"error", err.Error())
	}
	raw.rawBody = string(data)

	c.logger.Debug(ctx, "Dinstar response",
		"http_code", resp.StatusCode,
		"body", c.prepareJSONForLogging(raw.rawBody))

	return c.decode(ctx, req, raw, is2xx)
}

// decode fills in the decoded body and httpSuccessful for a received response
func (c *Client) decode(ctx context.Context, req Req, raw rawResult, is2xx bool) rawResult {
	trimmed := strings.TrimSpace(raw.rawBody)
	if trimmed == "" {
		raw.httpSuccessful = is2xx
		return raw
	}

	if !gjson.Valid(trimmed) {
		msg := decodeErrorMessage(trimmed)
		c.logger.Error(ctx, "Dinstar response JSON decode error",
			"url", c.requestURL(req),
			"http_code", raw.httpCode,
			"error", msg,
			"body", bodyPreview(raw.rawBody))
		raw.transportErr = "JSON decode error: " + msg
		return raw
	}

	raw.httpSuccessful = is2xx
	if parsed := gjson.Parse(trimmed); parsed.Type != gjson.Null {
		raw.body = parsed
	}
	return raw
}

// decodeErrorMessage describes why s is not valid JSON
func decodeErrorMessage(s string) string {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return err.Error()
	}
	return "invalid JSON"
}

// requestURL returns the absolute URL of req including the query string
func (c *Client) requestURL(req Req) string {
	u := c.BaseURL + req.urlPath()
	if req.Method == http.MethodGet && len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

// httpClient returns the connection handle, creating it on first use
func (c *Client) httpClient() (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errors.New("client is closed")
	}
	if c.conn != nil {
		return c.conn, nil
	}

	transport, err := c.newTransport()
	if err != nil {
		return nil, err
	}
	c.transport = transport
	c.conn = &http.Client{
		Transport: &digest.Transport{
			Username:  c.username,
			Password:  c.password,
			Transport: transport,
		},
		Timeout: c.Timeout,
	}

	c.logger.Debug(context.Background(), "Dinstar connection handle created",
		"host", c.Host,
		"verify_certificate", c.VerifyCertificate)

	return c.conn, nil
}

// dropConnection closes idle connections and discards the handle
func (c *Client) dropConnection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	c.transport = nil
	c.conn = nil
}

// newTransport builds the keep-alive transport behind the digest layer
func (c *Client) newTransport() (*http.Transport, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, errors.New("default HTTP transport unavailable")
	}
	transport := base.Clone()

	dialer := &net.Dialer{
		Timeout:   c.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = c.ConnectTimeout
	transport.TLSClientConfig = c.tlsConfig()

	return transport, nil
}

// tlsConfig never checks host names. With VerifyCertificate the peer chain is
// still verified against the configured roots.
func (c *Client) tlsConfig() *tls.Config {
	cfg := &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // gateways present self-signed certificates for bare IPs
		MinVersion:         tls.VersionTLS12,
	}
	if !c.VerifyCertificate {
		return cfg
	}

	roots := c.rootCAs
	cfg.VerifyConnection = func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return errors.New("gateway presented no certificate")
		}
		pool := roots
		if pool == nil {
			sys, err := x509.SystemCertPool()
			if err != nil {
				return fmt.Errorf("load system roots: %w", err)
			}
			pool = sys
		}
		intermediates := x509.NewCertPool()
		for _, cert := range cs.PeerCertificates[1:] {
			intermediates.AddCert(cert)
		}
		_, err := cs.PeerCertificates[0].Verify(x509.VerifyOptions{
			Roots:         pool,
			Intermediates: intermediates,
		})
		return err
	}
	return cfg
}

// checkContextCancellation returns ctx.Err() without blocking
func checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// sleepCtx waits for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// maskPassword keeps the first and last character and masks the rest.
// Passwords of two characters or fewer are masked entirely.
func maskPassword(p string) string {
	r := []rune(p)
	if len(r) <= 2 {
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + strings.Repeat(".", len(r)-2) + string(r[len(r)-1])
}

// bodyPreview truncates a response body for log output
func bodyPreview(body string) string {
	if len(body) <= MaxBodyPreviewLength {
		return body
	}
	return body[:MaxBodyPreviewLength] + "..."
}
