package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"

	firebase "firebase.google.com/go/v4"
	firebasestorage "firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"
)

// ObjectStore is the bucket backend behind the storage service. The
// production implementation talks to Cloud Storage through Firebase;
// tests install a stub through SetStorageService.
type ObjectStore interface {
	Upload(ctx context.Context, bucketName string, objectName string, src io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, bucketName string, objectName string) error
}

// StorageService uploads prayer request attachments to Cloud Storage.
// Voice recordings, images and documents each live in their own bucket
// so retention policies can differ per attachment type.
type StorageService struct {
	store ObjectStore

	VoiceBucket    string
	ImageBucket    string
	DocumentBucket string
}

var storageService *StorageService

func InitStorageService() {
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	var app *firebase.App
	var err error

	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			log.Printf("Failed to initialize Firebase app with service account: %v", err)
			return
		}
		log.Println("Firebase initialized with service account file")
	} else {
		// Use Application Default Credentials (ADC)
		app, err = firebase.NewApp(context.Background(), nil)
		if err != nil {
			log.Printf("Failed to initialize Firebase app with ADC: %v", err)
			return
		}
		log.Println("Firebase initialized with Application Default Credentials")
	}

	client, err := app.Storage(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase storage client: %v", err)
		return
	}

	storageService = NewStorageService(&firebaseObjectStore{client: client})

	log.Println("Attachment storage service initialized successfully")
}

// NewStorageService wires a storage service over the given backend,
// with bucket names taken from the environment.
func NewStorageService(store ObjectStore) *StorageService {
	return &StorageService{
		store:          store,
		VoiceBucket:    bucketFromEnv("VOICE_BUCKET", "prayer-voice-recordings"),
		ImageBucket:    bucketFromEnv("IMAGE_BUCKET", "prayer-images"),
		DocumentBucket: bucketFromEnv("DOCUMENT_BUCKET", "prayer-documents"),
	}
}

// GetStorageService returns the singleton storage service instance, nil
// when Firebase could not be initialized.
func GetStorageService() *StorageService {
	return storageService
}

// SetStorageService swaps the singleton storage service instance.
func SetStorageService(s *StorageService) {
	storageService = s
}

func bucketFromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Upload streams src into the named bucket and returns a publicly
// fetchable URL for the stored object.
func (s *StorageService) Upload(ctx context.Context, bucketName string, objectName string, src io.Reader, contentType string) (string, error) {
	return s.store.Upload(ctx, bucketName, objectName, src, contentType)
}

// Delete removes an uploaded object. Used as compensating cleanup when
// a later step of a submission fails, so attachments never outlive a
// request record that was never written.
func (s *StorageService) Delete(ctx context.Context, bucketName string, objectName string) error {
	return s.store.Delete(ctx, bucketName, objectName)
}

type firebaseObjectStore struct {
	client *firebasestorage.Client
}

func (f *firebaseObjectStore) Upload(ctx context.Context, bucketName string, objectName string, src io.Reader, contentType string) (string, error) {
	bucket, err := f.client.Bucket(bucketName)
	if err != nil {
		return "", fmt.Errorf("failed to open bucket %s: %v", bucketName, err)
	}

	w := bucket.Object(objectName).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s to %s: %v", objectName, bucketName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload of %s to %s: %v", objectName, bucketName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, url.PathEscape(objectName)), nil
}

func (f *firebaseObjectStore) Delete(ctx context.Context, bucketName string, objectName string) error {
	bucket, err := f.client.Bucket(bucketName)
	if err != nil {
		return fmt.Errorf("failed to open bucket %s: %v", bucketName, err)
	}

	if err := bucket.Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s from %s: %v", objectName, bucketName, err)
	}

	return nil
}
