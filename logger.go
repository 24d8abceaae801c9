/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"bufio"
	"bytes"

	"github.com/retroenv/retrogolib/log"
)

/// Logger is the emulator's output log.
///
var Logger *log.Logger

/// CreateLogger returns a logger at debug level when debugging, or one
/// that only reports errors when quiet.
///
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()

	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}

	return log.NewWithConfig(cfg)
}

/// LogLines outputs each line of a multi-line block as its own message.
///
func LogLines(logger *log.Logger, text []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(text))

	for scanner.Scan() {
		logger.Info(scanner.Text())
	}
}
