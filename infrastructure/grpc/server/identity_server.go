package server

import (
	"context"
	"dm-lab/auth"
	"dm-lab/errors"
	"dm-lab/infrastructure/grpc/api"
	"dm-lab/services"
	"log/slog"
	"time"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type IdentityServer struct {
	auth services.IPhoneAuthService
	log  *slog.Logger
}

func NewIdentityServer(auth services.IPhoneAuthService, log *slog.Logger) *IdentityServer {
	return &IdentityServer{auth: auth, log: log}
}

func (s *IdentityServer) StartVerification(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	verificationID, err := s.auth.StartVerification(ctx, req.GetFields()["phoneNumber"].GetStringValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"verificationId": structpb.NewStringValue(verificationID),
	}}, nil
}

func (s *IdentityServer) ConfirmVerification(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	credential, err := s.auth.ConfirmVerification(ctx,
		req.GetFields()["verificationId"].GetStringValue(),
		req.GetFields()["code"].GetStringValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"token":       structpb.NewStringValue(credential.Token),
		"uid":         structpb.NewStringValue(credential.Identity.ID),
		"phoneNumber": structpb.NewStringValue(credential.Identity.PhoneNumber),
		"expiresAt":   structpb.NewStringValue(credential.ExpiresAt.UTC().Format(time.RFC3339)),
	}}, nil
}

// WhoAmI echoes the identity the interceptor resolved from the credential.
func (s *IdentityServer) WhoAmI(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"uid":         structpb.NewStringValue(caller.ID),
		"phoneNumber": structpb.NewStringValue(caller.PhoneNumber),
	}}, nil
}

func (s *IdentityServer) SignOut(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	token, ok := auth.TokenFromContext(ctx)
	if !ok {
		return nil, errors.MapToGRPCError(errors.ErrNotAuthenticated)
	}
	if err := s.auth.SignOut(ctx, token); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

var _ api.IdentityServer = (*IdentityServer)(nil)
