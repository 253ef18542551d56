package firebase

import (
	"context"
	"fmt"
	"io"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and storage client
type App struct {
	FirebaseApp   *firebase.App
	StorageClient *storage.Client
}

// InitFirebase initializes the Firebase application and storage client
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	return &App{FirebaseApp: firebaseApp, StorageClient: storageClient}, nil
}

// Uploader stores an object and returns its public URL.
// Handlers depend on this interface so storage can be faked in tests.
type Uploader interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, body io.Reader) (string, error)
}

// Upload writes the object to the named bucket and returns a public
// download URL for it.
func (a *App) Upload(ctx context.Context, bucket, objectName, contentType string, body io.Reader) (string, error) {
	b, err := a.StorageClient.Bucket(bucket)
	if err != nil {
		return "", fmt.Errorf("error resolving bucket %s: %w", bucket, err)
	}

	w := b.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		w.Close()
		return "", fmt.Errorf("error writing object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("error finalizing object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectName), nil
}
