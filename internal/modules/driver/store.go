// README: Driver store backed by Firestore (drivers collection).
package driver

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tvirti/internal/types"
)

const driversCollection = "drivers"

type Repository interface {
	Create(ctx context.Context, d *Driver) error
	Get(ctx context.Context, id types.ID) (*Driver, error)
	List(ctx context.Context, f Filter) ([]*Driver, error)
	Save(ctx context.Context, d *Driver) error
	Delete(ctx context.Context, id types.ID) error
}

type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(id types.ID) *firestore.DocumentRef {
	return s.client.Collection(driversCollection).Doc(string(id))
}

func (s *FirestoreStore) Create(ctx context.Context, d *Driver) error {
	if _, err := s.doc(d.ID).Create(ctx, d); err != nil {
		return fmt.Errorf("create driver %s: %w", d.ID, err)
	}
	return nil
}

func (s *FirestoreStore) Get(ctx context.Context, id types.ID) (*Driver, error) {
	snap, err := s.doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get driver %s: %w", id, err)
	}
	return decode(snap)
}

func (s *FirestoreStore) List(ctx context.Context, f Filter) ([]*Driver, error) {
	q := s.client.Collection(driversCollection).Query
	if f.Service != "" {
		q = q.Where("service", "==", string(f.Service))
	}
	if f.ActiveOnly {
		q = q.Where("active", "==", true)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*Driver
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list drivers: %w", err)
		}
		d, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *FirestoreStore) Save(ctx context.Context, d *Driver) error {
	if _, err := s.doc(d.ID).Set(ctx, d); err != nil {
		return fmt.Errorf("save driver %s: %w", d.ID, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id types.ID) error {
	_, err := s.doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete driver %s: %w", id, err)
	}
	return nil
}

func decode(snap *firestore.DocumentSnapshot) (*Driver, error) {
	var d Driver
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("decode driver %s: %w", snap.Ref.ID, err)
	}
	d.ID = types.ID(snap.Ref.ID)
	return &d, nil
}
