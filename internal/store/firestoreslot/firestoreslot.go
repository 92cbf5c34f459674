// Package firestoreslot keeps slots as documents in a Cloud Firestore collection.
package firestoreslot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/idilsaglam/tada/internal/store"
)

const DefaultCollection = "slots"

const defaultTimeout = 10 * time.Second

// Config selects the project and collection. CredentialsFile is optional;
// without it the client uses application default credentials or the emulator.
type Config struct {
	ProjectID       string
	Collection      string
	CredentialsFile string
	Timeout         time.Duration
}

type slotDoc struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// Slot is a store.Slot with one document per key.
type Slot struct {
	client     *firestore.Client
	collection string
	timeout    time.Duration
}

func New(ctx context.Context, cfg Config) (*Slot, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	s := &Slot{client: client, collection: cfg.Collection, timeout: cfg.Timeout}
	if s.collection == "" {
		s.collection = DefaultCollection
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	return s, nil
}

func (s *Slot) doc(key string) (*firestore.DocumentRef, error) {
	if key == "" || strings.Contains(key, "/") {
		return nil, fmt.Errorf("invalid firestore document id %q", key)
	}
	return s.client.Collection(s.collection).Doc(key), nil
}

func (s *Slot) Get(key string) ([]byte, error) {
	ref, err := s.doc(key)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	var d slotDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return []byte(d.Value), nil
}

func (s *Slot) Set(key string, value []byte) error {
	ref, err := s.doc(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := ref.Set(ctx, slotDoc{Value: string(value), UpdatedAt: time.Now()}); err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

func (s *Slot) Close() error {
	return s.client.Close()
}
