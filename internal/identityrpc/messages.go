package identityrpc

import (
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "caresupport.identity.v1.Identity"

	MethodCreateAccount = "/" + ServiceName + "/CreateAccount"
	MethodSignIn        = "/" + ServiceName + "/SignIn"
	MethodSignOut       = "/" + ServiceName + "/SignOut"
	MethodDeleteAccount = "/" + ServiceName + "/DeleteAccount"
	MethodPing          = "/" + ServiceName + "/Ping"
)

type CreateAccountRequest struct {
	Email       string
	Password    string
	DisplayName string
}

type SignInRequest struct {
	Email    string
	Password string
}

type DeleteAccountRequest struct {
	UserID string
}

// AccountResponse is returned by CreateAccount and SignIn. Token authorises
// SignOut and DeleteAccount for the same account.
type AccountResponse struct {
	UserID      string
	Email       string
	DisplayName string
	Token       string
}

func (r CreateAccountRequest) Proto() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"email":        r.Email,
		"password":     r.Password,
		"display_name": r.DisplayName,
	})
}

func CreateAccountRequestFrom(s *structpb.Struct) CreateAccountRequest {
	return CreateAccountRequest{
		Email:       str(s, "email"),
		Password:    str(s, "password"),
		DisplayName: str(s, "display_name"),
	}
}

func (r SignInRequest) Proto() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"email":    r.Email,
		"password": r.Password,
	})
}

func SignInRequestFrom(s *structpb.Struct) SignInRequest {
	return SignInRequest{Email: str(s, "email"), Password: str(s, "password")}
}

func (r DeleteAccountRequest) Proto() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"user_id": r.UserID})
}

func DeleteAccountRequestFrom(s *structpb.Struct) DeleteAccountRequest {
	return DeleteAccountRequest{UserID: str(s, "user_id")}
}

func (r AccountResponse) Proto() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"user_id":      r.UserID,
		"email":        r.Email,
		"display_name": r.DisplayName,
		"token":        r.Token,
	})
}

func AccountResponseFrom(s *structpb.Struct) AccountResponse {
	return AccountResponse{
		UserID:      str(s, "user_id"),
		Email:       str(s, "email"),
		DisplayName: str(s, "display_name"),
		Token:       str(s, "token"),
	}
}

// str reads a string field; missing fields and nil structs read as "".
func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}
