package auth

import (
	"context"
	"errors"
	"os"
	"sync"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var (
	firebaseOnce sync.Once
	firebaseAuth *fbauth.Client
	firebaseErr  error
	projectID    string
)

// firebaseClient lazily initializes the Firebase Admin SDK. Sign-in routes
// return 503 instead of crashing the whole service when credentials are
// absent (e.g. local development without Google auth).
func firebaseClient(ctx context.Context) (*fbauth.Client, error) {
	firebaseOnce.Do(func() {
		credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		projectID = os.Getenv("FIREBASE_PROJECT_ID")
		if credsJSON == "" || projectID == "" {
			firebaseErr = errors.New("firebase credentials not configured")
			return
		}

		opt := option.WithCredentialsJSON([]byte(credsJSON))
		config := &firebase.Config{ProjectID: projectID}

		app, err := firebase.NewApp(ctx, config, opt)
		if err != nil {
			firebaseErr = err
			return
		}
		firebaseAuth, firebaseErr = app.Auth(ctx)
	})
	return firebaseAuth, firebaseErr
}

// verifyGoogleIDToken checks the Firebase ID token (including revocation and
// audience) and returns uid, email, name, picture.
func verifyGoogleIDToken(ctx context.Context, idToken string) (string, string, string, string, error) {
	client, err := firebaseClient(ctx)
	if err != nil {
		return "", "", "", "", err
	}

	token, err := client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return "", "", "", "", errors.New("invalid or revoked ID token")
	}
	if token.Audience != projectID {
		return "", "", "", "", errors.New("invalid token audience")
	}

	email, ok := token.Claims["email"].(string)
	if !ok || email == "" {
		return "", "", "", "", errors.New("email not found in token")
	}
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	return token.UID, email, name, picture, nil
}
