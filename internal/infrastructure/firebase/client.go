package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// App wraps the Firebase SDK entry point. Auth carries the identity side
// (sign-up, login and password flows stay in the web client; the backend only
// verifies ID tokens), Firestore the document store, Messaging the push
// channel for price alerts.
type App struct {
	app *firebase.App
}

// NewApp initializes the Firebase SDK from FIREBASE_CREDENTIALS_PATH, or from
// an inline FIREBASE_CREDENTIALS_JSON written to a temp file. With neither
// set it returns nil and the server runs without Firebase (in-memory or
// Postgres persistence, no auth, no push).
func NewApp(ctx context.Context) (*App, error) {
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		if credJSON == "" {
			log.Println("Warning: No Firebase credentials found. Firebase disabled.")
			return nil, nil
		}

		tmpFile, err := os.CreateTemp("", "firebase-credentials-*.json")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		defer tmpFile.Close()

		if _, err := tmpFile.Write([]byte(credJSON)); err != nil {
			return nil, fmt.Errorf("failed to write credentials: %w", err)
		}

		credPath = tmpFile.Name()
	}

	opt := option.WithCredentialsFile(credPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	log.Println("Firebase initialized successfully")
	return &App{app: app}, nil
}

func (a *App) Auth(ctx context.Context) (*auth.Client, error) {
	client, err := a.app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting auth client: %w", err)
	}
	return client, nil
}

func (a *App) Firestore(ctx context.Context) (*firestore.Client, error) {
	client, err := a.app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}
	return client, nil
}

func (a *App) Messaging(ctx context.Context) (*messaging.Client, error) {
	client, err := a.app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}
	return client, nil
}

// Authenticator verifies Firebase ID tokens and resolves the stable user id.
type Authenticator struct {
	client *auth.Client
}

func NewAuthenticator(client *auth.Client) *Authenticator {
	return &Authenticator{client: client}
}

// Verify checks the ID token signature and expiry and returns the user's UID.
func (a *Authenticator) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("invalid ID token: %w", err)
	}
	return token.UID, nil
}
