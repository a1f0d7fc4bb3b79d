//go:build !zmq

package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

func startBlockSignal(_ context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}
	logger.Error("zmq block signal requested but the binary was built without -tags zmq", zap.String("addr", addr))
	return nil, errors.New("zmq support not compiled in")
}
