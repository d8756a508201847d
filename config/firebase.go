package config

import (
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseAppConfig returns the app config for the configured project, or nil to
// let the SDK discover it from the credentials.
func FirebaseAppConfig() *firebase.Config {
	if AppConfig.FirebaseProjectID == "" {
		return nil
	}
	return &firebase.Config{ProjectID: AppConfig.FirebaseProjectID}
}

// FirebaseClientOptions returns the credential options for the Firebase SDK.
// Without a credentials file the SDK falls back to application default credentials.
func FirebaseClientOptions() []option.ClientOption {
	if AppConfig.FirebaseCredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(AppConfig.FirebaseCredentialsFile)}
}
