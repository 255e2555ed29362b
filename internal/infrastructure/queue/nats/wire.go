package nats

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

type replyError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type replyEnvelope struct {
	Result *domain.SplitResult `json:"result,omitempty"`
	Error  *replyError         `json:"error,omitempty"`
}

var errorKinds = []struct {
	name string
	kind error
}{
	{"invalid_input", domain.ErrInvalidInput},
	{"invalid_config", domain.ErrInvalidConfig},
	{"unsupported_format", domain.ErrUnsupportedFormat},
	{"profile_not_found", domain.ErrProfileNotFound},
	{"temporary", domain.ErrTemporary},
}

func kindName(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return "internal"
}

func kindFromName(name string) error {
	for _, k := range errorKinds {
		if k.name == name {
			return k.kind
		}
	}
	return nil
}

func encodeRequest(req domain.SplitRequest) ([]byte, error) {
	return json.Marshal(req)
}

// handleRequest answers one request. Once serving has stopped the handler is
// skipped and the caller gets a temporary error, so it can retry elsewhere.
func handleRequest(
	ctx context.Context,
	data []byte,
	handler func(context.Context, domain.SplitRequest) (*domain.SplitResult, error),
) []byte {
	var envelope replyEnvelope

	var req domain.SplitRequest
	if ctx.Err() != nil {
		envelope.Error = &replyError{Kind: kindName(domain.ErrTemporary), Message: "worker is shutting down"}
	} else if err := json.Unmarshal(data, &req); err != nil {
		envelope.Error = &replyError{Kind: kindName(domain.ErrInvalidInput), Message: "invalid json: " + err.Error()}
	} else if result, err := handler(ctx, req); err != nil {
		slog.Warn("nats_split_request", "status", "error", "error", err)
		envelope.Error = &replyError{Kind: kindName(err), Message: err.Error()}
	} else {
		envelope.Result = result
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		payload, _ = json.Marshal(replyEnvelope{Error: &replyError{Kind: "internal", Message: err.Error()}})
	}
	return payload
}

func decodeReply(data []byte) (*domain.SplitResult, error) {
	var envelope replyEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "decode split reply", err)
	}
	if envelope.Error != nil {
		cause := errors.New(envelope.Error.Message)
		if kind := kindFromName(envelope.Error.Kind); kind != nil {
			return nil, domain.WrapError(kind, "remote split", cause)
		}
		return nil, errors.Join(errors.New("remote split"), cause)
	}
	if envelope.Result == nil {
		return nil, domain.WrapError(domain.ErrTemporary, "decode split reply", errors.New("empty reply"))
	}
	if envelope.Result.Rows == nil {
		envelope.Result.Rows = []string{}
	}
	return envelope.Result, nil
}
