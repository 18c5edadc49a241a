// utils/firebase.go
package utils

import (
	"context"

	"fintrack/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Push
// delivery is optional: when no credentials file is configured the client
// stays nil and the notification capability reports unsupported.
func FirebaseInit() {
	logger := GetLogger()

	credsFile := config.AppConfig.FirebaseCredentialsFile
	if credsFile == "" {
		logger.Warn("firebase: no credentials file configured, push notifications disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(credsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		logger.Sugar().Warnf("firebase: error initializing app, push notifications disabled: %v", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Sugar().Warnf("firebase: error getting Messaging client, push notifications disabled: %v", err)
		return
	}

	FCMClient = client
}
