package connection

import (
	"context"
	"fmt"

	"taskflow/config"
	"taskflow/logging"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// FBConnection opens a Firestore client through the Firebase app using the
// service account file from GOOGLE_APPLICATION_CREDENTIALS when set.
func FBConnection(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCreds != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCreds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firestore client: %w", err)
	}

	logging.Logger.Infof("Event ID: FIRESTORE_CONNECTED, Description: project %s", cfg.FirebaseProjID)
	return client, nil
}
