// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"mafatih/internal/common/config"
)

// Client wraps the Zeebe gRPC client used to host the resolution and
// reminder job workers.
type Client struct {
	client         zbc.Client
	requestTimeout time.Duration
}

// NewClient dials the broker and verifies it answers a topology request
// before returning.
func NewClient(ctx context.Context, cfg config.CamundaConfig) (*Client, error) {
	if cfg.BrokerAddress == "" {
		return nil, fmt.Errorf("zeebe broker address is empty")
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{client: zeebeClient, requestTimeout: config.GetDuration(cfg.RequestTimeout)}
	if c.requestTimeout <= 0 {
		c.requestTimeout = 10 * time.Second
	}

	if err := c.HealthCheck(ctx); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.BrokerAddress, err)
	}
	return c, nil
}

// GetClient returns the raw Zeebe client for opening job workers.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck sends a topology request to the broker.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}
