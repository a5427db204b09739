// Copyright (C) 2025 Tenant Ops, Inc.
//
// This file is part of Offboarder.
//
// Offboarder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Offboarder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
	"github.com/tenantops/offboarder/config"
)

// GetLogger builds the process logger from the loaded configuration. Call
// after config.LoadValues.
func GetLogger() (*logr.Logger, error) {
	var writers []io.Writer

	if config.JSONLogs.Value().(bool) {
		writers = append(writers, os.Stderr)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if logFile := config.LogFile.Value().(string); logFile != "" {
		if file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
			return nil, err
		} else {
			writers = append(writers, file)
		}
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	logger := logr.New(&zerologSink{l: &zl})
	return &logger, nil
}

// zerologSink adapts zerolog to the logr.LogSink interface. logr V levels
// map onto zerolog levels: 0 info, 1 debug, everything above trace.
type zerologSink struct {
	l    *zerolog.Logger
	name string
}

func (s *zerologSink) Init(info logr.RuntimeInfo) {}

func (s *zerologSink) Enabled(level int) bool {
	return level <= config.Verbosity.Value().(int)
}

func (s *zerologSink) Info(level int, msg string, keysAndValues ...interface{}) {
	var event *zerolog.Event
	switch {
	case level <= 0:
		event = s.l.Info()
	case level == 1:
		event = s.l.Debug()
	default:
		event = s.l.Trace()
	}
	s.emit(event, msg, keysAndValues)
}

func (s *zerologSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.emit(s.l.Error().Err(err), msg, keysAndValues)
}

func (s *zerologSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	zl := s.l.With().Fields(keysAndValues).Logger()
	return &zerologSink{l: &zl, name: s.name}
}

func (s *zerologSink) WithName(name string) logr.LogSink {
	if s.name != "" {
		name = s.name + "/" + name
	}
	zl := s.l.With().Str("logger", name).Logger()
	return &zerologSink{l: &zl, name: name}
}

func (s *zerologSink) emit(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	event.Fields(keysAndValues).Msg(msg)
}
