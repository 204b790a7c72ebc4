package grpc

import (
	"strings"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCCode maps an error code to the matching gRPC status code
func GRPCCode(code mdwerror.Code) codes.Code {
	switch {
	case code == mdwerror.CodeStepLimitExceeded:
		return codes.FailedPrecondition
	case code.IsAlgebra(), code == mdwerror.CodeInvalidInput:
		return codes.InvalidArgument
	case code == mdwerror.CodeNotFound:
		return codes.NotFound
	case code == mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case code == mdwerror.CodeServiceUnavailable, code == mdwerror.CodeConnectionFailed:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// ToStatus converts err into a gRPC status error. The error code travels in
// the message prefix ("NO_EQUALS_SIGN: ...") so clients can recover it with
// FromStatus.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := mdwerror.GetCode(err)
	return status.Error(GRPCCode(code), string(code)+": "+err.Error())
}

// FromStatus converts a gRPC status error back into an mdwerror with the
// code recovered from the message prefix
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || err == nil {
		return err
	}

	if prefix, message, found := strings.Cut(st.Message(), ": "); found {
		if code := mdwerror.Code(prefix); code.IsValid() {
			return mdwerror.New(message).WithCode(code)
		}
	}

	switch st.Code() {
	case codes.Unavailable:
		return mdwerror.Wrap(err, "solver service unavailable").WithCode(mdwerror.CodeServiceUnavailable)
	case codes.DeadlineExceeded:
		return mdwerror.Wrap(err, "solver request timed out").WithCode(mdwerror.CodeTimeout)
	default:
		return mdwerror.Wrap(err, "solver request failed").WithCode(mdwerror.CodeInternal)
	}
}
