// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"crypto/x509"
	"time"
)

// Client configuration options using the functional options pattern

// Username sets the username for digest authentication
func Username(username string) func(*Client) {
	return func(c *Client) {
		c.username = username
	}
}

// Password sets the password for digest authentication
func Password(password string) func(*Client) {
	return func(c *Client) {
		c.password = password
	}
}

// VerifyCertificate enables or disables TLS certificate chain verification
// (default: false)
//
// Gateways ship with self-signed certificates issued for no particular host
// name, so host names are never checked. With verification enabled the
// certificate chain must still lead to a trusted root (see TLSRootCAs).
//
// Example:
//
//	client, _ := dinstar.NewClient("192.168.1.100",
//	    dinstar.Username("admin"),
//	    dinstar.Password("secret"),
//	    dinstar.VerifyCertificate(true))
func VerifyCertificate(verify bool) func(*Client) {
	return func(c *Client) {
		c.VerifyCertificate = verify
	}
}

// TLSRootCAs sets the root certificates used when VerifyCertificate is
// enabled. Without it the system pool is used.
func TLSRootCAs(pool *x509.CertPool) func(*Client) {
	return func(c *Client) {
		c.rootCAs = pool
	}
}

// ConnectTimeout sets the TCP connect and TLS handshake timeout (default: 10s)
func ConnectTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.ConnectTimeout = duration
	}
}

// Timeout sets the total timeout of a single HTTP request (default: 30s)
func Timeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.Timeout = duration
	}
}

// NumberOfPorts sets the number of gateway ports (default: 8)
//
// Operations that accept an optional port list address ports 0..n-1 when the
// list is omitted.
func NumberOfPorts(n int) func(*Client) {
	return func(c *Client) {
		c.NumberOfPorts = n
	}
}

// AuthRetryDelay sets the wait before retrying a request rejected with 401 or
// 403 (default: 500ms)
func AuthRetryDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.AuthRetryDelay = duration
	}
}

// WithLogger configures a custom logger for the client
//
// By default, the client logs warnings and errors through DefaultLogger.
// Pass &NoOpLogger{} to silence it.
//
// All JSON content logged at Debug level is automatically redacted to remove
// sensitive data (passwords, secrets, tokens).
//
// Example:
//
//	logger := dinstar.NewDefaultLogger(dinstar.LogLevelDebug)
//	client, _ := dinstar.NewClient("192.168.1.100",
//	    dinstar.Username("admin"),
//	    dinstar.Password("secret"),
//	    dinstar.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables/disables JSON pretty printing in logs
//
// This only affects Debug-level request and response bodies.
//
// Default: enabled (true)
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}

// Request modifiers for individual operations

// SMSPorts restricts SendSMS to the given ports
//
// Example:
//
//	res, err := client.SendSMS(ctx, "+15550100", "hello", nil, 7,
//	    dinstar.SMSPorts(0, 1))
func SMSPorts(ports ...int) func(*SMSOptions) {
	return func(o *SMSOptions) {
		o.Ports = ports
	}
}

// SMSEncoding sets the message encoding for SendSMS.
//
// Valid encodings: unicode, gsm7bit, 8bit. An unknown encoding fails the call
// before any request is sent.
func SMSEncoding(encoding string) func(*SMSOptions) {
	return func(o *SMSOptions) {
		o.Encoding = encoding
	}
}

// StatusReport requests (default) or suppresses delivery status reports
func StatusReport(enabled bool) func(*SMSOptions) {
	return func(o *SMSOptions) {
		o.StatusReport = enabled
	}
}

// ActionParam sets the action parameter of SetPortInfo (for CallForward the
// forwarding condition, e.g. "Unconditional" or "CancelAll")
func ActionParam(param string) func(*PortActionOptions) {
	return func(o *PortActionOptions) {
		o.Param = param
	}
}

// ForwardNumber sets the call forwarding destination of SetPortInfo
//
// Example:
//
//	res, err := client.SetPortInfo(ctx, 2, dinstar.ActionCallForward,
//	    dinstar.ActionParam("Unconditional"),
//	    dinstar.ForwardNumber("+15550199"))
func ForwardNumber(number string) func(*PortActionOptions) {
	return func(o *PortActionOptions) {
		o.Number = number
	}
}

// STKItem selects a menu item in STKOperation
func STKItem(item int) func(*STKOptions) {
	return func(o *STKOptions) {
		o.Item = &item
	}
}

// STKParam sets the input text of STKOperation
func STKParam(param string) func(*STKOptions) {
	return func(o *STKOptions) {
		o.Param = param
	}
}

// STKAction sets the navigation action of STKOperation (e.g. "ok", "cancel")
func STKAction(action string) func(*STKOptions) {
	return func(o *STKOptions) {
		o.Action = action
	}
}
