package usecase

import (
	"context"

	"github.com/hapkiduki/sgp-engine/internal/application/port"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{}) {}
func (l nopLogger) With(...interface{}) port.Logger { return l }
func (l nopLogger) WithContext(context.Context) port.Logger { return l }

func ptr[T any](v T) *T { return &v }
