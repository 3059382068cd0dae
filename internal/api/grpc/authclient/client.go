// Package authclient dials the identity service for collaborating
// services that verify session tokens remotely.
package authclient

import (
	"context"
	"time"

	gogrpc "google.golang.org/grpc"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	platformgrpc "github.com/ledgerlane/identity/internal/platform/grpc"
)

const defaultDialTimeout = 10 * time.Second

// Client bundles the identity service clients over one connection.
type Client struct {
	conn       *gogrpc.ClientConn
	Auth       authv1.AuthServiceClient
	Tokens     authv1.TokenServiceClient
	Statistics authv1.StatisticsServiceClient
}

// Dial connects to the identity server and waits for its health check
// before returning clients. logf may be nil.
func Dial(ctx context.Context, addr string, logf func(string, ...any)) (*Client, error) {
	conn, err := platformgrpc.DialWithHealth(ctx, addr, defaultDialTimeout, logf, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn:       conn,
		Auth:       authv1.NewAuthServiceClient(conn),
		Tokens:     authv1.NewTokenServiceClient(conn),
		Statistics: authv1.NewStatisticsServiceClient(conn),
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
