package rpc

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/news-cms/internal/newsportal"
)

var (
	ErrNotFound = zenrpc.NewStringError(http.StatusNotFound, "not found")
	ErrInternal = zenrpc.NewStringError(http.StatusInternalServerError, "internal error")
)

// newError converts manager errors to JSON-RPC errors. Unknown errors become
// ErrInternal; the middleware logs the original.
func newError(err error) error {
	if err == nil {
		return nil
	}

	var ve validation.Errors
	switch {
	case errors.As(err, &ve):
		fields := make(map[string]string, len(ve))
		for field, fieldErr := range ve {
			fields[field] = fieldErr.Error()
		}
		return &zenrpc.Error{Code: http.StatusUnprocessableEntity, Message: "invalid params", Data: fields, Err: err}
	case errors.Is(err, newsportal.ErrNotFound):
		return ErrNotFound
	}

	return &zenrpc.Error{Code: ErrInternal.Code, Message: ErrInternal.Message, Err: err}
}
