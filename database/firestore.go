package database

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
)

// FirestoreClient is the global Firestore client instance.
var FirestoreClient *firestore.Client

// InitFirestore opens the Firestore client of the Firebase project.
func InitFirestore(app *firebase.App) {
	client, err := app.Firestore(context.Background())
	if err != nil {
		log.Fatalf("failed to open Firestore: %v", err)
	}
	FirestoreClient = client
	log.Println("Connected to Firestore successfully!")
}

// PingFirestore issues a cheap read to confirm the store is reachable.
func PingFirestore(ctx context.Context) error {
	it := FirestoreClient.Collections(ctx)
	_, err := it.Next()
	if err == iterator.Done {
		return nil
	}
	return err
}
