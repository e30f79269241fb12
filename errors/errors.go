package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Local validation, never reaches a collaborator.
var (
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrInvalidPhone = fmt.Errorf("phone number must be in international format (+15555555555)")
	ErrInvalidState = fmt.Errorf("operation not allowed in current session state")
)

// Session and identity failures.
var (
	ErrVerificationFailed = fmt.Errorf("verification failed")
	ErrBadCode            = fmt.Errorf("verification code does not match")
	ErrCodeExpired        = fmt.Errorf("verification code expired")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrInvalidToken       = fmt.Errorf("invalid or expired token")
	ErrPermissionDenied   = fmt.Errorf("permission denied")
)

// Collaborator failures.
var (
	ErrNetwork       = fmt.Errorf("network error")
	ErrFetch         = fmt.Errorf("fetch error")
	ErrNotFound      = fmt.Errorf("document not found")
	ErrAlreadyExists = fmt.Errorf("document already exists")
	ErrWorkerPanic   = fmt.Errorf("worker panic")
)

// MapToGRPCError converts a sentinel error into a gRPC status.
// Errors that already carry a status are returned untouched.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidPhone):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrBadCode):
		return status.Error(codes.Unauthenticated, ErrBadCode.Error())
	case errors.Is(err, ErrCodeExpired):
		return status.Error(codes.DeadlineExceeded, ErrCodeExpired.Error())
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrNotAuthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// FromGRPCError is the client-side inverse of MapToGRPCError.
// Anything that is not a known status becomes ErrNetwork.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	switch st.Code() {
	case codes.InvalidArgument:
		if st.Message() == ErrInvalidPhone.Error() {
			return ErrInvalidPhone
		}
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.Unauthenticated:
		if st.Message() == ErrBadCode.Error() {
			return ErrBadCode
		}
		return fmt.Errorf("%w: %s", ErrInvalidToken, st.Message())
	case codes.DeadlineExceeded:
		if st.Message() == ErrCodeExpired.Error() {
			return ErrCodeExpired
		}
		return fmt.Errorf("%w: %s", ErrNetwork, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, st.Message())
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	default:
		return fmt.Errorf("%w: %s", ErrNetwork, st.Message())
	}
}
