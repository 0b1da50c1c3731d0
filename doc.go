// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package dinstar provides a typed client for the HTTP/JSON management API of
// Dinstar GSM/LTE gateways.
//
// The client covers SMS (send, results, delivery reports, queue depth,
// inbox), USSD, per-port status and actions, call detail records, STK menu
// navigation and device health. Requests use HTTP Digest authentication over
// a single reusable keep-alive connection.
//
// # Quick Start
//
//	client, err := dinstar.NewClient(
//	    "192.168.1.100",
//	    dinstar.Username("admin"),
//	    dinstar.Password("secret"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	res, err := client.SendSMS(ctx, "+15550100", "hello", nil, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("queued as task", *res.Data.TaskID)
//
// # Results
//
// Every operation returns a Res[T] and an error. The error is non-nil exactly
// when Res.Success is false and is always a *DinstarError. On success Data is
// set; optional fields the gateway did not report are nil pointers.
//
// A call succeeds when the HTTP status is 2xx and the gateway's own status
// code ("error_code") matches what the endpoint reports on success: 202 for
// send_sms and send_ussd, 200 for everything else. The STK endpoints and
// get_status have no status code and are judged by their body instead.
//
// Fields the typed payload does not model stay reachable through gjson:
//
//	res, _ := client.GetDeviceStatus(ctx)
//	fmt.Println(res.GetValue("performance.uptime").String())
//
// # Error Handling
//
// Failures are classified on the DinstarError:
//
//	_, err := client.QuerySMSInQueue(ctx)
//	var dErr *dinstar.DinstarError
//	if errors.As(err, &dErr) {
//	    switch {
//	    case dErr.IsLocal():
//	        // bad arguments, nothing was sent
//	    case dErr.IsGatewayError():
//	        // gateway answered with an unexpected error_code
//	    default:
//	        // transport, HTTP or decode failure
//	    }
//	}
//
// A request rejected with HTTP 401 or 403 is retried once over a fresh
// connection after a short delay (AuthRetryDelay). No other failure is
// retried.
//
// # Connection Lifecycle
//
// The connection is created lazily on the first call. ResetConnection drops
// it and the next call reconnects; Close releases it for good.
//
// # Configuration
//
// Options can be passed directly or loaded with LoadConfig from a YAML file,
// a .env file and DINSTAR_* environment variables:
//
//	cfg, err := dinstar.LoadConfig("dinstar.yml", "")
//	client, err := dinstar.NewClientFromConfig(cfg)
//
// # Logging
//
// The client logs warnings and errors through DefaultLogger. Use WithLogger
// with NewZerologLogger, a custom Logger, or &NoOpLogger{} to change that.
// Passwords are masked and request bodies are redacted before logging.
package dinstar
