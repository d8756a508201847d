package utils

import (
	"context"
	"log"

	"tourbook/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
)

var (
	FirebaseApp *firebase.App
	FCMClient   *messaging.Client
	AuthClient  *auth.Client
)

// FirebaseInit initializes the Firebase App with its Auth and Messaging clients.
func FirebaseInit() *firebase.App {
	ctx := context.Background()

	app, err := firebase.NewApp(ctx, config.FirebaseAppConfig(), config.FirebaseClientOptions()...)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	fcm, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Auth client: %v", err)
	}

	FirebaseApp = app
	FCMClient = fcm
	AuthClient = authClient
	return app
}
