package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lzjever/project-audit/internal/core"
	"github.com/lzjever/project-audit/internal/observability"
)

// Provider is the audit operation served over gRPC.
type Provider interface {
	GetAuditData(ctx context.Context, projectID string) (json.RawMessage, error)
}

type Server struct {
	provider Provider
	log      *zap.Logger
}

func NewServer(provider Provider, log *zap.Logger) *Server {
	return &Server{provider: provider, log: log}
}

func (s *Server) GetAuditData(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Value, error) {
	data, err := s.provider.GetAuditData(ctx, req.GetValue())
	if err != nil {
		st := toStatus(err)
		s.log.Warn("rpc: get audit data failed",
			zap.String("project_id", req.GetValue()),
			zap.String("code", st.Code().String()),
		)
		return nil, st.Err()
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		s.log.Error("rpc: audit value is not valid JSON", zap.Error(err))
		return nil, status.Error(codes.Internal, core.MsgFetchFailed)
	}
	out, err := toValue(v)
	if err != nil {
		s.log.Error("rpc: audit value not representable", zap.String("project_id", req.GetValue()), zap.Error(err))
		return nil, status.Error(codes.OutOfRange, err.Error())
	}
	return out, nil
}

// maxExactInt is the largest integer a google.protobuf.Value number holds
// without rounding.
const maxExactInt = 1 << 53

// toValue converts a UseNumber decoded JSON value. Integers outside
// +/-2^53 are rejected instead of being rounded.
func toValue(v interface{}) (*structpb.Value, error) {
	switch t := v.(type) {
	case json.Number:
		return numberValue(t)
	case map[string]interface{}:
		fields := make(map[string]*structpb.Value, len(t))
		for k, e := range t {
			fv, err := toValue(e)
			if err != nil {
				return nil, err
			}
			fields[k] = fv
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
	case []interface{}:
		values := make([]*structpb.Value, 0, len(t))
		for _, e := range t {
			ev, err := toValue(e)
			if err != nil {
				return nil, err
			}
			values = append(values, ev)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	default:
		return structpb.NewValue(t)
	}
}

func numberValue(n json.Number) (*structpb.Value, error) {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		i, err := n.Int64()
		if err != nil || i > maxExactInt || i < -maxExactInt {
			return nil, fmt.Errorf("integer %s exceeds the exact range of a protobuf number", lit)
		}
		return structpb.NewNumberValue(float64(i)), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("number %s: %w", lit, err)
	}
	return structpb.NewNumberValue(f), nil
}

// UnaryMetrics counts requests by method and resulting code.
func UnaryMetrics(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	observability.RPCRequestsTotal.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	return resp, err
}

func toStatus(err error) *status.Status {
	var appErr *core.AppError
	if !errors.As(err, &appErr) {
		return status.New(codes.Internal, err.Error())
	}
	switch appErr.Code {
	case core.ErrBadRequest:
		return status.New(codes.InvalidArgument, appErr.Message)
	case core.ErrUpstream:
		return status.New(codeForHTTPStatus(appErr.HTTPStatus()),
			fmt.Sprintf("%s (upstream status %d)", appErr.Message, appErr.HTTPStatus()))
	case core.ErrUpstreamUnavailable:
		return status.New(codes.Unavailable, appErr.Message)
	default:
		return status.New(codes.Internal, appErr.Message)
	}
}

func codeForHTTPStatus(code int) codes.Code {
	switch {
	case code == http.StatusBadRequest:
		return codes.InvalidArgument
	case code == http.StatusUnauthorized:
		return codes.Unauthenticated
	case code == http.StatusForbidden:
		return codes.PermissionDenied
	case code == http.StatusNotFound:
		return codes.NotFound
	case code == http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case code >= 500:
		return codes.Unavailable
	default:
		return codes.Unknown
	}
}
