// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Default client configuration values
const (
	DefaultConnectTimeout    = 10 * time.Second
	DefaultTimeout           = 30 * time.Second
	DefaultNumberOfPorts     = 8
	DefaultAuthRetryDelay    = 500 * time.Millisecond
	DefaultVerifyCertificate = false
	DefaultPrettyPrintLogs   = true
)

// Security limits for JSON processing and logging
const (
	MaxJSONSizeForLogging = 1 * 1024 * 1024 // 1MB limit to prevent ReDoS attacks
	MaxSensitiveFields    = 1000            // Max redaction operations to prevent DoS
)

// Logging message constants
const (
	JSONTooLargeMessage     = "[JSON TOO LARGE FOR LOGGING]"
	JSONTooManySensitiveMsg = "[JSON CONTAINS TOO MANY SENSITIVE FIELDS]"
)

// sensitiveKeys are the JSON keys whose string values are redacted in logs
var sensitiveKeys = []string{"password", "secret", "token", "auth"}

// defaultRedactionPatterns contains regex patterns for redacting sensitive data in logs
var defaultRedactionPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(sensitiveKeys))
	for _, key := range sensitiveKeys {
		patterns = append(patterns, regexp.MustCompile(`"`+key+`"\s*:\s*"[^"]*"`))
	}
	return patterns
}()

// Client is a Dinstar gateway API client
//
// A Client owns a single connection handle (an *http.Client with digest
// authentication over a keep-alive transport). The handle is created on the
// first request and reused until ResetConnection, an auth retry or Close
// discards it.
//
// Requests are synchronous. A Client may be shared between goroutines, but
// the gateway itself handles one management request at a time, so callers
// gain nothing from issuing calls in parallel.
type Client struct {
	// conn is the lazily created connection handle
	conn *http.Client

	// transport is the keep-alive transport behind conn
	transport *http.Transport

	// closed is set by Close; the client is unusable afterwards
	closed bool

	// mu guards conn, transport and closed
	mu sync.Mutex

	// Host as passed to NewClient
	Host string

	// BaseURL is the scheme and authority every request path is joined to
	BaseURL string

	username string // unexported for security
	password string // unexported for security

	// VerifyCertificate enables peer certificate chain verification.
	// Host names are never verified.
	VerifyCertificate bool

	// rootCAs overrides the system roots for chain verification
	rootCAs *x509.CertPool

	// Timeout configuration
	ConnectTimeout time.Duration
	Timeout        time.Duration

	// NumberOfPorts is the number of gateway ports used to build the
	// default "all ports" list
	NumberOfPorts int

	// AuthRetryDelay is the wait before the single auth retry
	AuthRetryDelay time.Duration

	// Logging configuration
	logger            Logger
	prettyPrintLogs   bool
	redactionPatterns []*regexp.Regexp
}

// NewClient creates a new Dinstar client for host with the specified options
//
// host is an IP address or host name ("192.168.1.100", "gw.example.net:8443")
// or a full base URL ("http://192.168.1.100"). Without a scheme, https is used.
//
// No connection is made here. The first operation establishes it.
//
// Example:
//
//	client, err := dinstar.NewClient(
//	    "192.168.1.100",
//	    dinstar.Username("admin"),
//	    dinstar.Password("secret"),
//	    dinstar.NumberOfPorts(16),
//	)
//	if err != nil {
//	    log.Fatal(err) // Configuration error
//	}
//	defer client.Close()
//
//	res, err := client.GetDeviceStatus(ctx)
//
// Returns a configured Client or an error if configuration validation fails.
func NewClient(host string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Host:              host,
		VerifyCertificate: DefaultVerifyCertificate,
		ConnectTimeout:    DefaultConnectTimeout,
		Timeout:           DefaultTimeout,
		NumberOfPorts:     DefaultNumberOfPorts,
		AuthRetryDelay:    DefaultAuthRetryDelay,
		logger:            NewDefaultLogger(LogLevelWarn),
		prettyPrintLogs:   DefaultPrettyPrintLogs,
		redactionPatterns: defaultRedactionPatterns,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	client.BaseURL = baseURL(client.Host)

	client.logger.Info(context.Background(), "Dinstar client created",
		"base_url", client.BaseURL,
		"ports", client.NumberOfPorts,
		"connection", "lazy")

	return client, nil
}

// baseURL derives the request base URL from the configured host
func baseURL(host string) string {
	host = strings.TrimSpace(host)
	if !strings.HasPrefix(strings.ToLower(host), "http") {
		host = "https://" + host
	}
	return strings.TrimRight(host, "/")
}

// ResetConnection discards the current connection handle.
//
// Idle keep-alive connections are closed. The client stays usable: the next
// operation creates a new handle and performs a fresh TCP, TLS and digest
// handshake.
//
// Example:
//
//	// gateway rebooted, drop stale keep-alive sockets
//	client.ResetConnection()
//	res, err := client.GetPortInfo(ctx, nil, nil)
func (c *Client) ResetConnection() {
	c.dropConnection()
	c.logger.Debug(context.Background(), "Dinstar connection reset",
		"host", c.Host,
		"reusable", true)
}

// Close releases the connection handle (terminal operation).
//
// Operations called after Close fail without network I/O. Use
// ResetConnection instead to drop the connection but keep the client.
//
// Safe to call multiple times.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	c.transport = nil
	c.conn = nil
	c.closed = true

	c.logger.Debug(context.Background(), "Dinstar client closed",
		"host", c.Host,
		"reusable", false)

	return nil
}

// HasCredentials returns true if credentials are configured
//
// This method only indicates if credentials exist without exposing
// the actual values.
func (c *Client) HasCredentials() bool {
	return c.username != "" || c.password != ""
}

// validateConfig validates client configuration
//
// Validates:
//   - Host is not empty
//   - Positive timeouts (ConnectTimeout, Timeout > 0)
//   - NumberOfPorts >= 1
//   - AuthRetryDelay >= 0
//
// Logs a warning for plain http and for missing credentials.
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("gateway host cannot be empty")
	}

	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got: %v", c.ConnectTimeout)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.NumberOfPorts < 1 {
		return fmt.Errorf("number of ports must be at least 1, got: %d", c.NumberOfPorts)
	}
	if c.AuthRetryDelay < 0 {
		return fmt.Errorf("auth retry delay must be non-negative, got: %v", c.AuthRetryDelay)
	}

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.Host)), "http://") {
		c.logger.Warn(context.Background(), "Plain HTTP configured - connection is not encrypted",
			"host", c.Host,
			"security_risk", "Credentials and messages transmitted in clear text")
	} else if !c.VerifyCertificate {
		c.logger.Debug(context.Background(), "TLS certificate verification disabled",
			"host", c.Host)
	}

	if !c.HasCredentials() {
		c.logger.Warn(context.Background(), "No credentials configured",
			"host", c.Host,
			"message", "gateway will reject requests")
	}

	return nil
}

// allPorts returns the comma separated list of every port index
func (c *Client) allPorts() string {
	ports := make([]string, c.NumberOfPorts)
	for i := range ports {
		ports[i] = strconv.Itoa(i)
	}
	return strings.Join(ports, ",")
}

// joinPorts renders ports as a comma separated list
func joinPorts(ports []int) string {
	s := make([]string, len(ports))
	for i, p := range ports {
		s[i] = strconv.Itoa(p)
	}
	return strings.Join(s, ",")
}

// prepareJSONForLogging redacts sensitive data and formats JSON for logging
//
// This method performs security checks and data sanitization:
//  1. Validates JSON size to prevent ReDoS attacks (max 1MB)
//  2. Checks sensitive field count to prevent DoS (max 1000 fields)
//  3. Redacts sensitive data (passwords, secrets, tokens)
//  4. Pretty-prints JSON if prettyPrintLogs is enabled
//
// Returns the processed JSON string safe for logging.
func (c *Client) prepareJSONForLogging(jsonStr string) string {
	if len(jsonStr) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	sensitiveCount := 0
	for _, key := range sensitiveKeys {
		sensitiveCount += strings.Count(jsonStr, `"`+key+`"`)
	}
	if sensitiveCount > MaxSensitiveFields {
		c.logger.Warn(context.Background(), "Too many sensitive fields detected",
			"count", sensitiveCount,
			"max", MaxSensitiveFields)
		return JSONTooManySensitiveMsg
	}

	redacted := c.redactSensitiveData(jsonStr)

	if c.prettyPrintLogs {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(redacted), "", "  "); err == nil {
			return buf.String()
		}
	}

	return redacted
}

// redactSensitiveData replaces sensitive string values in JSON with [REDACTED]
//
// Handles flexible whitespace around colons (RFC 8259 compliant).
func (c *Client) redactSensitiveData(json string) string {
	result := json
	for i, pattern := range c.redactionPatterns {
		if i >= len(sensitiveKeys) {
			break
		}
		result = pattern.ReplaceAllString(result, `"`+sensitiveKeys[i]+`":"[REDACTED]"`)
	}
	return result
}
