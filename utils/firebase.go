package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	FirebaseApp   *firebase.App
	AuthClient    *auth.Client
	once          sync.Once
	initErr       error
	isInitialized bool
)

// InitFirebase initializes the Firebase Admin SDK and its Auth client
// (singleton pattern). When no credentials are configured the server keeps
// running and the auth middleware falls back to the local JWT verifier.
func InitFirebase() error {
	if isInitialized {
		log.Println("ℹ️  Firebase already initialized, skipping...")
		return initErr
	}

	once.Do(func() {
		ctx := context.Background()

		// Prioritize GOOGLE_APPLICATION_CREDENTIALS
		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FIREBASE_CREDENTIALS_PATH")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		projectID := os.Getenv("FIREBASE_PROJECT_ID")

		log.Printf("📂 Looking for Firebase credentials at: %s - FIREBASE_PROJECT_ID=%s",
			credentialsPath, projectID)

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Printf("⚠️  Firebase credentials file not found at: %s", credentialsPath)
			log.Println("ℹ️  Continuing without Firebase (token verification falls back to AUTH_JWT_SECRET)")
			isInitialized = true
			initErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		config := &firebase.Config{
			ProjectID: projectID,
		}

		opt := option.WithCredentialsFile(credentialsPath)
		app, err := firebase.NewApp(ctx, config, opt)
		if err != nil {
			log.Printf("❌ Error initializing Firebase app: %v", err)
			isInitialized = true
			initErr = fmt.Errorf("firebase app initialization failed: %v", err)
			return
		}

		authClient, err := app.Auth(ctx)
		if err != nil {
			log.Printf("❌ Error getting Firebase Auth client: %v", err)

			FirebaseApp = app
			AuthClient = nil
			isInitialized = true
			initErr = fmt.Errorf("firebase auth client initialization failed: %v", err)
			return
		}

		log.Println("✅ Firebase Auth client initialized successfully")

		FirebaseApp = app
		AuthClient = authClient
		isInitialized = true
		initErr = nil
	})

	return initErr
}

// GetAuthClient returns the Firebase Auth client instance
func GetAuthClient() *auth.Client {
	return AuthClient
}

// IsFirebaseAuthEnabled checks if Firebase token verification is available
func IsFirebaseAuthEnabled() bool {
	return AuthClient != nil
}

// GetInitError returns the initialization error if any
func GetInitError() error {
	return initErr
}

// ResetFirebase resets Firebase (for testing only - DO NOT use in production)
func ResetFirebase() {
	FirebaseApp = nil
	AuthClient = nil
	once = sync.Once{}
	initErr = nil
	isInitialized = false
}
