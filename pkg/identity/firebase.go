package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseCredentials is the subset of a service account needed to verify ID tokens.
type FirebaseCredentials struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

// Configured reports whether every credential field is present.
func (c FirebaseCredentials) Configured() bool {
	return c.ProjectID != "" && c.ClientEmail != "" && c.PrivateKey != ""
}

// FirebaseVerifier verifies Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier initialises the Admin SDK from service-account fields.
func NewFirebaseVerifier(ctx context.Context, creds FirebaseCredentials) (*FirebaseVerifier, error) {
	if !creds.Configured() {
		return nil, errors.New("firebase credentials incomplete")
	}
	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   creds.ProjectID,
		"client_email": creds.ClientEmail,
		"private_key":  creds.PrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, err
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: creds.ProjectID}, option.WithCredentialsJSON(raw))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Claims{
		Subject: tok.UID,
		Email:   claimString(tok.Claims, "email"),
		Name:    claimString(tok.Claims, "name"),
	}, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
