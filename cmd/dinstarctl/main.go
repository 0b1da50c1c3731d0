// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package main provides dinstarctl, a command line client for Dinstar
// gateways.
//
// Usage:
//
//	dinstarctl [--config file] [--env-file file] [--log-level level] <command> [args]
//
// Commands:
//
//	status                    device CPU, flash and memory usage
//	ports                     state of every port
//	queue                     number of queued SMS
//	inbox [flag]              received SMS (unread, read, all)
//	send-sms <number> <text>  queue an SMS
//	stop-sms <task-id>        cancel a queued SMS task
//	ussd <port> <text>        send a USSD command
//	ussd-reply <port>         read USSD replies
//	cdr                       call detail records
//	stk <port>                current STK menu
//	stk-frame <port>          current STK frame index
//
// Settings come from the config file and DINSTAR_* environment variables
// (DINSTAR_HOST, DINSTAR_USERNAME, DINSTAR_PASSWORD, ...).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/netascode/go-dinstar"
)

// errUsage marks argument errors that should print the usage text
var errUsage = errors.New("usage")

func main() {
	var configPath string
	var envFile string
	var logLevel string
	var smsID int

	flag.StringVar(&configPath, "config", "", "Config file path (YAML, JSON or TOML)")
	flag.StringVar(&envFile, "env-file", "", "Load environment variables from this .env file")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, none")
	flag.IntVar(&smsID, "sms-id", 1, "user_id attached to send-sms")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := dinstar.LoadConfig(configPath, envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dinstarctl: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := dinstar.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dinstarctl: %v\n", err)
		os.Exit(2)
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerologLevel(level)).
		With().Timestamp().Logger()

	client, err := dinstar.NewClientFromConfig(cfg, dinstar.WithLogger(dinstar.NewZerologLogger(zl)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dinstarctl: %v\n", err)
		os.Exit(1)
	}
	defer client.Close() //nolint:errcheck // Close never fails

	ok, err := run(context.Background(), client, flag.Args(), smsID)
	if errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "dinstarctl: %v\n", err)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dinstarctl: %v\n", err)
	}
	if !ok {
		os.Exit(1)
	}
}

// run executes one command and prints its result. It reports whether the
// gateway call succeeded.
func run(ctx context.Context, client *dinstar.Client, args []string, smsID int) (bool, error) {
	cmd, args := args[0], args[1:]

	switch cmd {
	case "status":
		return emit(client.GetDeviceStatus(ctx))
	case "ports":
		return emit(client.GetPortInfo(ctx, nil, nil))
	case "queue":
		return emit(client.QuerySMSInQueue(ctx))
	case "inbox":
		q := dinstar.IncomingSMSQuery{}
		if len(args) > 0 {
			q.Flag = args[0]
		}
		return emit(client.QueryIncomingSMS(ctx, q))
	case "send-sms":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: send-sms <number> <text>", errUsage)
		}
		return emit(client.SendSMS(ctx, args[0], args[1], nil, smsID))
	case "stop-sms":
		id, err := intArg(args, "stop-sms <task-id>")
		if err != nil {
			return false, err
		}
		return emit(client.StopSMSTask(ctx, id))
	case "ussd":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: ussd <port> <text>", errUsage)
		}
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("%w: invalid port %q", errUsage, args[0])
		}
		return emit(client.SendUSSD(ctx, []int{port}, args[1], dinstar.USSDSend))
	case "ussd-reply":
		port, err := intArg(args, "ussd-reply <port>")
		if err != nil {
			return false, err
		}
		return emit(client.QueryUSSDReply(ctx, []int{port}))
	case "cdr":
		return emit(client.GetCDR(ctx, dinstar.CDRQuery{}))
	case "stk":
		port, err := intArg(args, "stk <port>")
		if err != nil {
			return false, err
		}
		return emit(client.QuerySTKInfo(ctx, port))
	case "stk-frame":
		port, err := intArg(args, "stk-frame <port>")
		if err != nil {
			return false, err
		}
		return emit(client.QuerySTKFrameID(ctx, port))
	default:
		return false, fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// output is the JSON document printed for every command
type output[T any] struct {
	Success   bool    `json:"success"`
	HTTPCode  int     `json:"http_code"`
	ErrorCode *int    `json:"error_code,omitempty"`
	GatewaySN *string `json:"sn,omitempty"`
	Data      *T      `json:"data,omitempty"`
	Error     *string `json:"error,omitempty"`
	Raw       *string `json:"raw_response,omitempty"`
}

func emit[T any](res dinstar.Res[T], _ error) (bool, error) {
	out := output[T]{
		Success:   res.Success,
		HTTPCode:  res.HTTPCode,
		ErrorCode: res.ErrorCode,
		GatewaySN: res.GatewaySN,
		Data:      res.Data,
		Error:     res.ErrorMessage,
		Raw:       res.RawResponse,
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return false, err
	}
	fmt.Println(string(b))
	return res.Success, nil
}

func intArg(args []string, synopsis string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", errUsage, synopsis)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", errUsage, synopsis, args[0])
	}
	return n, nil
}

func zerologLevel(level dinstar.LogLevel) zerolog.Level {
	switch level {
	case dinstar.LogLevelDebug:
		return zerolog.DebugLevel
	case dinstar.LogLevelInfo:
		return zerolog.InfoLevel
	case dinstar.LogLevelWarn:
		return zerolog.WarnLevel
	case dinstar.LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: dinstarctl [flags] <command> [args]

Commands:
  status                    device CPU, flash and memory usage
  ports                     state of every port
  queue                     number of queued SMS
  inbox [flag]              received SMS (unread, read, all)
  send-sms <number> <text>  queue an SMS
  stop-sms <task-id>        cancel a queued SMS task
  ussd <port> <text>        send a USSD command
  ussd-reply <port>         read USSD replies
  cdr                       call detail records
  stk <port>                current STK menu
  stk-frame <port>          current STK frame index

Flags:
`)
	flag.PrintDefaults()
}
