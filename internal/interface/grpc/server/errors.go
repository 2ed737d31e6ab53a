package server

import (
	"context"
	"errors"
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

// ErrorDomain errdetails.ErrorInfo中的Domain
const ErrorDomain = "wizardshop"

// toStatus AppError → gRPC状态
// 映射规则(按业务码区间):
//
//	401xx → Unauthenticated
//	404xx → NotFound
//	409xx → InvalidArgument
//	422xx → FailedPrecondition
//	其他  → Internal(只返回提示信息,内部错误不外泄)
//
// 业务码放在ErrorInfo.Metadata["code"]中,客户端据此做细粒度判断
func toStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if st, ok := status.FromError(err); ok {
		return st
	}
	if errors.Is(err, context.Canceled) {
		return status.New(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.New(codes.DeadlineExceeded, err.Error())
	}

	appErr := apperrors.GetAppError(err)
	st := status.New(grpcCode(appErr.Code), appErr.Message)
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   strconv.Itoa(appErr.Code),
		Domain:   ErrorDomain,
		Metadata: map[string]string{"code": strconv.Itoa(appErr.Code)},
	})
	if derr != nil {
		return st
	}
	return detailed
}

func grpcCode(code int) codes.Code {
	switch code / 100 {
	case 401:
		return codes.Unauthenticated
	case 404:
		return codes.NotFound
	case 409:
		return codes.InvalidArgument
	case 422:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// BusinessCode 从gRPC错误中取出业务码,没有ErrorInfo时返回0
func BusinessCode(err error) int {
	st, ok := status.FromError(err)
	if !ok {
		return 0
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			code, _ := strconv.Atoi(info.GetMetadata()["code"])
			return code
		}
	}
	return 0
}
