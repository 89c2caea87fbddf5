package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func handleResponse(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)
	if w == nil {
		return
	}

	if err := xcontext.Error(ctx); err != nil {
		if err := WriteJSON(w, newErrorResponse(err)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
		}
		return
	}

	if resp := xcontext.Response(ctx); resp != nil {
		if err := WriteJSON(w, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func WriteJSON(w http.ResponseWriter, resp any) error {
	w.Header().Set("Content-Type", "application/json")

	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
