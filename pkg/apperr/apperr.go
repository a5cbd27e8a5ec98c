// Package apperr carries client-facing error kinds from the usecases to the
// transport, where they are mapped onto gRPC status codes in one place.
package apperr

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain is the ErrorInfo domain attached to coded errors.
const Domain = "assistant.omnipos"

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindFailedPrecondition
	KindRateLimited
	KindUnauthenticated
)

type Error struct {
	Kind    Kind
	Code    string // machine-readable reason, optional
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithCode sets the machine-readable reason sent to clients.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

func InvalidArgument(msg string) *Error    { return &Error{Kind: KindInvalidArgument, Message: msg} }
func NotFound(msg string) *Error           { return &Error{Kind: KindNotFound, Message: msg} }
func FailedPrecondition(msg string) *Error { return &Error{Kind: KindFailedPrecondition, Message: msg} }
func RateLimited(msg string) *Error        { return &Error{Kind: KindRateLimited, Message: msg} }
func Unauthenticated(msg string) *Error    { return &Error{Kind: KindUnauthenticated, Message: msg} }

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the kind of err, or KindInternal for errors that carry none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// CodeOf returns the reason code of err, if any.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

var grpcCodes = map[Kind]codes.Code{
	KindInternal:           codes.Internal,
	KindInvalidArgument:    codes.InvalidArgument,
	KindNotFound:           codes.NotFound,
	KindFailedPrecondition: codes.FailedPrecondition,
	KindRateLimited:        codes.ResourceExhausted,
	KindUnauthenticated:    codes.Unauthenticated,
}

// ToGRPC converts err into a gRPC status error. Internal errors only expose
// their message, never the wrapped cause. A Code travels as ErrorInfo.Reason.
func ToGRPC(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if !errors.As(err, &appErr) {
		return status.Error(codes.Internal, "internal error")
	}

	st := status.New(grpcCodes[appErr.Kind], appErr.Message)
	if appErr.Code != "" {
		if withInfo, err := st.WithDetails(&errdetails.ErrorInfo{Reason: appErr.Code, Domain: Domain}); err == nil {
			st = withInfo
		}
	}
	return st.Err()
}

// ReasonOf extracts the ErrorInfo reason from a gRPC status error.
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.Reason
		}
	}
	return ""
}
