// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("tcpengine")

func init() {
	configureLogger(false)
}

// ConfigureLogger sets the package logger's verbosity. Call once at
// process start; tests generally leave the default (warnings only).
func ConfigureLogger(verbose bool) {
	configureLogger(verbose)
}

func configureLogger(verbose bool) {
	format := logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000000} %{shortfunc} %{level:s}%{color:reset} ▶ %{message}`,
	)
	backend := logging.NewLogBackend(os.Stderr, "[TCPENGINE] ", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	backendLeveled := logging.AddModuleLevel(backendFormatter)
	if verbose {
		backendLeveled.SetLevel(logging.DEBUG, "")
	} else {
		backendLeveled.SetLevel(logging.WARNING, "")
	}
	log.SetBackend(backendLeveled)
}
