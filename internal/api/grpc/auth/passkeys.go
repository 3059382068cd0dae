package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/audit"
	"github.com/ledgerlane/identity/internal/auth/passkey"
	"github.com/ledgerlane/identity/internal/auth/storage"
	"github.com/ledgerlane/identity/internal/auth/user"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type passkeyProvider interface {
	BeginRegistration(user webauthn.User, opts ...webauthn.RegistrationOption) (*protocol.CredentialCreation, *webauthn.SessionData, error)
	CreateCredential(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialCreationData) (*webauthn.Credential, error)
	BeginLogin(user webauthn.User, opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error)
	BeginDiscoverableLogin(opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error)
	ValidatePasskeyLogin(handler webauthn.DiscoverableUserHandler, session webauthn.SessionData, response *protocol.ParsedCredentialAssertionData) (webauthn.User, *webauthn.Credential, error)
}

type passkeyParser interface {
	ParseCredentialCreationResponseBytes(data []byte) (*protocol.ParsedCredentialCreationData, error)
	ParseCredentialRequestResponseBytes(data []byte) (*protocol.ParsedCredentialAssertionData, error)
}

type defaultPasskeyParser struct{}

func (defaultPasskeyParser) ParseCredentialCreationResponseBytes(data []byte) (*protocol.ParsedCredentialCreationData, error) {
	return protocol.ParseCredentialCreationResponseBytes(data)
}

func (defaultPasskeyParser) ParseCredentialRequestResponseBytes(data []byte) (*protocol.ParsedCredentialAssertionData, error) {
	return protocol.ParseCredentialRequestResponseBytes(data)
}

func (s *AuthService) passkeyReady() error {
	if s.store == nil {
		return status.Error(codes.Internal, "user store is not configured")
	}
	if s.passkeyStore == nil {
		return status.Error(codes.Internal, "passkey store is not configured")
	}
	if s.passkeyInitErr != nil || s.passkeyWebAuthn == nil {
		return status.Error(codes.Internal, "passkey configuration is not available")
	}
	if s.passkeyParser == nil {
		return status.Error(codes.Internal, "passkey parser is not configured")
	}
	return nil
}

func (s *AuthService) BeginPasskeyRegistration(ctx context.Context, in *authv1.BeginPasskeyRegistrationRequest) (*authv1.BeginPasskeyRegistrationResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "begin passkey registration request is required")
	}
	if err := s.passkeyReady(); err != nil {
		return nil, err
	}

	userID := strings.TrimSpace(in.GetUserId())
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user id is required")
	}
	account, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, handleDomainError(err)
	}

	owner, err := s.loadPasskeyUser(ctx, account)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "load passkey user: %v", err)
	}

	options := []webauthn.RegistrationOption{
		webauthn.WithResidentKeyRequirement(protocol.ResidentKeyRequirementRequired),
	}
	if len(owner.credentials) > 0 {
		options = append(options, webauthn.WithExclusions(webauthn.Credentials(owner.credentials).CredentialDescriptors()))
	}

	creation, session, err := s.passkeyWebAuthn.BeginRegistration(owner, options...)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "begin passkey registration: %v", err)
	}

	ceremonyID, err := s.storeCeremony(ctx, passkey.SessionKindRegistration, account.ID, session)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "store ceremony: %v", err)
	}
	optionsJSON, err := json.Marshal(creation)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode registration options: %v", err)
	}

	return &authv1.BeginPasskeyRegistrationResponse{
		CeremonyId:                    ceremonyID,
		CredentialCreationOptionsJson: optionsJSON,
	}, nil
}

func (s *AuthService) FinishPasskeyRegistration(ctx context.Context, in *authv1.FinishPasskeyRegistrationRequest) (*authv1.FinishPasskeyRegistrationResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "finish passkey registration request is required")
	}
	if err := s.passkeyReady(); err != nil {
		return nil, err
	}
	if len(in.GetCredentialResponseJson()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "credential response json is required")
	}

	session, err := s.consumeCeremony(ctx, in.GetCeremonyId(), passkey.SessionKindRegistration)
	if err != nil {
		return nil, err
	}
	if session.Subject == "" {
		return nil, status.Error(codes.Internal, "ceremony missing user id")
	}

	account, err := s.store.GetUser(ctx, session.Subject)
	if err != nil {
		return nil, handleDomainError(err)
	}
	owner, err := s.loadPasskeyUser(ctx, account)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "load passkey user: %v", err)
	}

	parsed, err := s.passkeyParser.ParseCredentialCreationResponseBytes(in.GetCredentialResponseJson())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "parse credential response: %v", err)
	}
	credential, err := s.passkeyWebAuthn.CreateCredential(owner, session.Data, parsed)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "validate credential response: %v", err)
	}

	recordID, err := s.idGenerator()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "generate credential id: %v", err)
	}
	record := storage.PasskeyCredential{
		ID:              recordID,
		UserID:          account.ID,
		CredentialID:    credential.ID,
		PublicKey:       credential.PublicKey,
		AttestationType: credential.AttestationType,
		Transports:      transportStrings(credential.Transport),
		SignCount:       credential.Authenticator.SignCount,
		BackupEligible:  credential.Flags.BackupEligible,
		BackupState:     credential.Flags.BackupState,
		DeviceName:      strings.TrimSpace(in.GetDeviceName()),
		CreatedAt:       s.nowUTC(),
		IsActive:        true,
	}
	if err := s.passkeyStore.PutPasskeyCredential(ctx, record); err != nil {
		return nil, handleDomainError(err)
	}

	account.HasPasskey = true
	return &authv1.FinishPasskeyRegistrationResponse{
		User:         userToProto(account),
		CredentialId: encodeCredentialID(credential.ID),
	}, nil
}

func (s *AuthService) BeginPasskeyLogin(ctx context.Context, in *authv1.BeginPasskeyLoginRequest) (*authv1.BeginPasskeyLoginResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "begin passkey login request is required")
	}
	if err := s.passkeyReady(); err != nil {
		return nil, err
	}

	userID := strings.TrimSpace(in.GetUserId())
	var (
		assertion *protocol.CredentialAssertion
		session   *webauthn.SessionData
		err       error
	)
	if userID == "" {
		assertion, session, err = s.passkeyWebAuthn.BeginDiscoverableLogin()
	} else {
		account, getErr := s.store.GetUser(ctx, userID)
		if getErr != nil {
			return nil, handleDomainError(getErr)
		}
		owner, loadErr := s.loadPasskeyUser(ctx, account)
		if loadErr != nil {
			return nil, status.Errorf(codes.Internal, "load passkey user: %v", loadErr)
		}
		assertion, session, err = s.passkeyWebAuthn.BeginLogin(owner)
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "begin passkey login: %v", err)
	}

	ceremonyID, err := s.storeCeremony(ctx, passkey.SessionKindLogin, userID, session)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "store ceremony: %v", err)
	}
	optionsJSON, err := json.Marshal(assertion)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode login options: %v", err)
	}

	return &authv1.BeginPasskeyLoginResponse{
		CeremonyId:                   ceremonyID,
		CredentialRequestOptionsJson: optionsJSON,
	}, nil
}

func (s *AuthService) FinishPasskeyLogin(ctx context.Context, in *authv1.FinishPasskeyLoginRequest) (*authv1.FinishPasskeyLoginResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "finish passkey login request is required")
	}
	if err := s.passkeyReady(); err != nil {
		return nil, err
	}
	if s.sessions == nil {
		return nil, status.Error(codes.Internal, "session tokens are not configured")
	}
	if len(in.GetCredentialResponseJson()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "credential response json is required")
	}

	session, err := s.consumeCeremony(ctx, in.GetCeremonyId(), passkey.SessionKindLogin)
	if err != nil {
		return nil, err
	}

	parsed, err := s.passkeyParser.ParseCredentialRequestResponseBytes(in.GetCredentialResponseJson())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "parse credential response: %v", err)
	}

	validatedUser, validatedCredential, err := s.passkeyWebAuthn.ValidatePasskeyLogin(s.passkeyUserHandler(ctx), session.Data, parsed)
	if err != nil {
		return nil, handleDomainError(apperrors.Wrap(apperrors.CodeInvalidCredentials, "passkey assertion rejected", err))
	}

	owner, ok := validatedUser.(*passkeyUser)
	if !ok {
		return nil, status.Error(codes.Internal, "passkey user type mismatch")
	}
	account := owner.user

	if validatedCredential.Authenticator.CloneWarning {
		s.recordAudit(ctx, account.ID, audit.MethodPasskey, false, in.GetIpAddress(), in.GetUserAgent(), map[string]string{
			"reason":        "clone_warning",
			"credential_id": encodeCredentialID(validatedCredential.ID),
		})
		return nil, handleDomainError(apperrors.New(apperrors.CodePossibleCloneDetected, "authenticator signature counter regressed"))
	}

	if !account.IsActive {
		s.recordAudit(ctx, account.ID, audit.MethodPasskey, false, in.GetIpAddress(), in.GetUserAgent(), map[string]string{"reason": "inactive"})
		return nil, handleDomainError(apperrors.New(apperrors.CodeInactiveAccount, "account is deactivated"))
	}

	stored, err := s.passkeyStore.GetPasskeyCredential(ctx, validatedCredential.ID)
	if err != nil {
		return nil, handleDomainError(err)
	}
	if err := s.passkeyStore.UpdatePasskeyCounter(ctx, stored.CredentialID, stored.SignCount, validatedCredential.Authenticator.SignCount, s.nowUTC()); err != nil {
		// Losing the conditional counter swap means another assertion
		// advanced the counter since we read it, which is the same
		// signal as a cloned authenticator.
		if apperrors.GetCode(err) == apperrors.CodeNotFound {
			s.recordAudit(ctx, account.ID, audit.MethodPasskey, false, in.GetIpAddress(), in.GetUserAgent(), map[string]string{
				"reason":        "counter_conflict",
				"credential_id": encodeCredentialID(validatedCredential.ID),
			})
			return nil, handleDomainError(apperrors.New(apperrors.CodePossibleCloneDetected, "authenticator signature counter conflict"))
		}
		return nil, handleDomainError(err)
	}

	signed, expiresAt, err := s.sessions.Issue(account.ID, string(account.Role))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "issue session token: %v", err)
	}

	account = s.stampLastLogin(ctx, account)
	s.recordAudit(ctx, account.ID, audit.MethodPasskey, true, in.GetIpAddress(), in.GetUserAgent(), map[string]string{
		"credential_id": encodeCredentialID(validatedCredential.ID),
	})

	return &authv1.FinishPasskeyLoginResponse{
		User:         userToProto(account),
		CredentialId: encodeCredentialID(validatedCredential.ID),
		SessionToken: signed,
		ExpiresAt:    timestamppb.New(expiresAt),
	}, nil
}

func (s *AuthService) ListPasskeys(ctx context.Context, in *authv1.ListPasskeysRequest) (*authv1.ListPasskeysResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list passkeys request is required")
	}
	if s.passkeyStore == nil {
		return nil, status.Error(codes.Internal, "passkey store is not configured")
	}
	userID := strings.TrimSpace(in.GetUserId())
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user id is required")
	}

	records, err := s.passkeyStore.ListPasskeyCredentials(ctx, userID, true)
	if err != nil {
		return nil, handleDomainError(err)
	}

	passkeys := make([]*authv1.Passkey, 0, len(records))
	for _, record := range records {
		entry := &authv1.Passkey{
			CredentialId:   encodeCredentialID(record.CredentialID),
			DeviceName:     record.DeviceName,
			Transports:     record.Transports,
			BackupEligible: record.BackupEligible,
			BackupState:    record.BackupState,
			CreatedAt:      timestamppb.New(record.CreatedAt),
		}
		if record.LastUsedAt != nil {
			entry.LastUsedAt = timestamppb.New(*record.LastUsedAt)
		}
		passkeys = append(passkeys, entry)
	}
	return &authv1.ListPasskeysResponse{Passkeys: passkeys}, nil
}

func (s *AuthService) RemovePasskey(ctx context.Context, in *authv1.RemovePasskeyRequest) (*authv1.RemovePasskeyResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "remove passkey request is required")
	}
	if s.passkeyStore == nil {
		return nil, status.Error(codes.Internal, "passkey store is not configured")
	}
	userID := strings.TrimSpace(in.GetUserId())
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user id is required")
	}
	credentialID, err := decodeCredentialID(in.GetCredentialId())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "credential id is invalid")
	}

	if err := s.passkeyStore.DeactivatePasskeyCredential(ctx, userID, credentialID); err != nil {
		return nil, handleDomainError(err)
	}
	return &authv1.RemovePasskeyResponse{}, nil
}

// passkeyUser adapts a user record and its active credentials to the
// webauthn.User interface.
type passkeyUser struct {
	user        user.User
	credentials []webauthn.Credential
}

func (u *passkeyUser) WebAuthnID() []byte {
	return []byte(u.user.ID)
}

func (u *passkeyUser) WebAuthnName() string {
	return u.user.Username
}

func (u *passkeyUser) WebAuthnDisplayName() string {
	return u.user.Username
}

func (u *passkeyUser) WebAuthnIcon() string {
	return ""
}

func (u *passkeyUser) WebAuthnCredentials() []webauthn.Credential {
	return u.credentials
}

func (s *AuthService) loadPasskeyUser(ctx context.Context, account user.User) (*passkeyUser, error) {
	records, err := s.passkeyStore.ListPasskeyCredentials(ctx, account.ID, true)
	if err != nil {
		return nil, err
	}
	credentials := make([]webauthn.Credential, 0, len(records))
	for _, record := range records {
		credentials = append(credentials, storedCredential(record))
	}
	return &passkeyUser{user: account, credentials: credentials}, nil
}

// storedCredential rebuilds the library credential from the persisted
// columns. SignCount carries the last value observed at login; the library
// compares it against the assertion counter to flag clones.
func storedCredential(record storage.PasskeyCredential) webauthn.Credential {
	transports := make([]protocol.AuthenticatorTransport, 0, len(record.Transports))
	for _, transport := range record.Transports {
		transports = append(transports, protocol.AuthenticatorTransport(transport))
	}
	return webauthn.Credential{
		ID:              record.CredentialID,
		PublicKey:       record.PublicKey,
		AttestationType: record.AttestationType,
		Transport:       transports,
		Flags: webauthn.CredentialFlags{
			BackupEligible: record.BackupEligible,
			BackupState:    record.BackupState,
		},
		Authenticator: webauthn.Authenticator{
			SignCount: record.SignCount,
		},
	}
}

func transportStrings(transports []protocol.AuthenticatorTransport) []string {
	out := make([]string, 0, len(transports))
	for _, transport := range transports {
		out = append(out, string(transport))
	}
	return out
}

func (s *AuthService) storeCeremony(ctx context.Context, kind passkey.SessionKind, subject string, session *webauthn.SessionData) (string, error) {
	if session == nil {
		return "", fmt.Errorf("session data is required")
	}
	ceremonyID, err := s.ceremonyIDGenerator()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}
	now := s.nowUTC()
	err = s.passkeyStore.PutCeremony(ctx, storage.Ceremony{
		ID:          ceremonyID,
		Kind:        string(kind),
		Subject:     subject,
		SessionJSON: string(payload),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.passkeyConfig.SessionTTL),
	})
	if err != nil {
		return "", err
	}
	return ceremonyID, nil
}

type loadedCeremony struct {
	Data    webauthn.SessionData
	Kind    passkey.SessionKind
	Subject string
}

// consumeCeremony removes the ceremony and decodes its session data. The
// delete happens first so a replayed finish cannot observe the same
// ceremony twice, expired or not.
func (s *AuthService) consumeCeremony(ctx context.Context, ceremonyID string, expectedKind passkey.SessionKind) (loadedCeremony, error) {
	ceremonyID = strings.TrimSpace(ceremonyID)
	if ceremonyID == "" {
		return loadedCeremony{}, status.Error(codes.InvalidArgument, "ceremony id is required")
	}

	stored, err := s.passkeyStore.ConsumeCeremony(ctx, ceremonyID)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeNotFound {
			return loadedCeremony{}, handleDomainError(apperrors.New(apperrors.CodeCeremonyNotFound, "ceremony not found or already used"))
		}
		return loadedCeremony{}, status.Errorf(codes.Internal, "consume ceremony: %v", err)
	}
	if stored.Kind != string(expectedKind) {
		return loadedCeremony{}, handleDomainError(apperrors.New(apperrors.CodeCeremonyNotFound, "ceremony kind mismatch"))
	}
	if !stored.ExpiresAt.After(s.nowUTC()) {
		return loadedCeremony{}, handleDomainError(apperrors.New(apperrors.CodeCeremonyExpired, "ceremony has expired"))
	}

	var session webauthn.SessionData
	if err := json.Unmarshal([]byte(stored.SessionJSON), &session); err != nil {
		return loadedCeremony{}, status.Errorf(codes.Internal, "decode ceremony session: %v", err)
	}
	return loadedCeremony{Data: session, Kind: expectedKind, Subject: stored.Subject}, nil
}

func (s *AuthService) passkeyUserHandler(ctx context.Context) webauthn.DiscoverableUserHandler {
	return func(_, userHandle []byte) (webauthn.User, error) {
		userID := string(userHandle)
		if strings.TrimSpace(userID) == "" {
			return nil, fmt.Errorf("user handle is required")
		}
		account, err := s.store.GetUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.loadPasskeyUser(ctx, account)
	}
}

func encodeCredentialID(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCredentialID(encoded string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimSpace(encoded))
}
