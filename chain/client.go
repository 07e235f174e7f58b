// Package chain connects to an execution node and exposes historical
// storage reads with a per-call timeout. It is the only package that
// talks to the network.
package chain

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/chests-genuine/zk-slot-timeline-soundness/io/logs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds each storage read unless WithTimeout overrides it.
const DefaultTimeout = 30 * time.Second

// ErrBadEndpoint is returned for endpoints that are not http(s) or ws(s) URLs.
var ErrBadEndpoint = errors.New("endpoint must be an http(s) or ws(s) URL")

var allowedSchemes = []string{"http://", "https://", "ws://", "wss://"}

// Client wraps an ethclient connection with the endpoint metadata and
// the per-call timeout the auditor needs.
type Client struct {
	endpoint string
	timeout  time.Duration
	chainID  *big.Int
	eth      *ethclient.Client
}

// Option configures a Client before it dials.
type Option func(c *Client) error

// WithTimeout bounds every storage read issued through the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		c.timeout = d
		return nil
	}
}

func validateEndpoint(endpoint string) error {
	for _, scheme := range allowedSchemes {
		if strings.HasPrefix(endpoint, scheme) {
			return nil
		}
	}
	return errors.Wrap(ErrBadEndpoint, endpoint)
}

// Dial connects to the endpoint and verifies the connection by asking
// for the chain ID. An endpoint that cannot identify its chain is
// treated as unreachable.
func Dial(ctx context.Context, endpoint string, opts ...Option) (*Client, error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}
	c := &Client{endpoint: endpoint, timeout: DefaultTimeout}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to RPC endpoint")
	}
	c.eth = ethclient.NewClient(rpcClient)

	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	id, err := c.eth.ChainID(probeCtx)
	if err != nil {
		c.eth.Close()
		return nil, errors.Wrap(err, "could not determine chain ID")
	}
	c.chainID = id

	log.WithFields(logrus.Fields{
		"endpoint": logs.MaskCredentialsLogging(endpoint),
		"chainID":  id,
	}).Info("Connected to execution endpoint")
	return c, nil
}

// StorageAt reads the raw value of a storage slot at a historical
// block, bounded by the client's per-call timeout. It satisfies
// audit.StorageReader.
func (c *Client) StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.eth.StorageAt(callCtx, account, key, blockNumber)
}

// ChainID returns the identity reported by the endpoint at dial time.
func (c *Client) ChainID() *big.Int {
	return c.chainID
}

// Endpoint returns the endpoint the client dialed.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close tears down the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}
