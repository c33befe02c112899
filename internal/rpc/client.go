package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Client struct {
	conn *grpc.ClientConn
}

func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial audit rpc %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// GetAuditData returns the audit value as JSON.
func (c *Client) GetAuditData(ctx context.Context, projectID string) (json.RawMessage, error) {
	out := new(structpb.Value)
	if err := c.conn.Invoke(ctx, getAuditDataFullName, wrapperspb.String(projectID), out); err != nil {
		return nil, err
	}
	b, err := protojson.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode audit value: %w", err)
	}
	return b, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
