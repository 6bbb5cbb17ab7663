// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/cli"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/logger"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/trustmanager"
	verpkg "github.com/H0llyW00dzZ/x509-trust-manager/src/version"
)

var version string // set by ldflags or defaults to imported version

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitUntrusted = 2
	exitSignal    = 130 // Standard exit code for SIGINT
)

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

// exitCode maps the result of a command to the process exit status.
// A chain that is not trusted is distinguished from other failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, trustmanager.ErrCertificateVerification):
		return exitUntrusted
	default:
		return exitFailure
	}
}

func main() {
	log := logger.NewCLILogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("Error: %v", err)
		}
		stop()
		os.Exit(exitCode(err))
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// Give the command a moment to clean up
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		os.Exit(exitSignal)
	}
}
