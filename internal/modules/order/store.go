// README: Order store backed by Firestore (orders collection) with optimistic status versioning.
package order

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

const (
	ordersCollection = "orders"
	defaultListLimit = 100
	maxListLimit     = 500
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id types.ID) (*Order, error)
	List(ctx context.Context, f Filter) ([]*Order, error)
	// Update stores o if the stored status version still equals expectedVersion.
	Update(ctx context.Context, o *Order, expectedVersion int) error
	Delete(ctx context.Context, id types.ID) error
}

type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(id types.ID) *firestore.DocumentRef {
	return s.client.Collection(ordersCollection).Doc(string(id))
}

func (s *FirestoreStore) Create(ctx context.Context, o *Order) error {
	if _, err := s.doc(o.ID).Create(ctx, o); err != nil {
		return fmt.Errorf("create order %s: %w", o.ID, err)
	}
	return nil
}

func (s *FirestoreStore) Get(ctx context.Context, id types.ID) (*Order, error) {
	snap, err := s.doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return decode(snap)
}

// List returns the newest orders first. Filtering by status needs the
// (status, createdAt desc) composite index.
func (s *FirestoreStore) List(ctx context.Context, f Filter) ([]*Order, error) {
	q := s.client.Collection(ordersCollection).Query
	if f.Status != StatusNone {
		q = q.Where("status", "==", string(f.Status))
	}
	q = q.OrderBy("createdAt", firestore.Desc).Limit(listLimit(f.Limit))

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*Order
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		o, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *FirestoreStore) Update(ctx context.Context, o *Order, expectedVersion int) error {
	ref := s.doc(o.ID)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get order %s: %w", o.ID, err)
		}
		cur, err := decode(snap)
		if err != nil {
			return err
		}
		if cur.StatusVersion != expectedVersion {
			return ErrConflict
		}
		return tx.Set(ref, o)
	})
}

func (s *FirestoreStore) Delete(ctx context.Context, id types.ID) error {
	_, err := s.doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

func decode(snap *firestore.DocumentSnapshot) (*Order, error) {
	var o Order
	if err := snap.DataTo(&o); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", snap.Ref.ID, err)
	}
	o.ID = types.ID(snap.Ref.ID)
	return &o, nil
}

func listLimit(n int) int {
	switch {
	case n <= 0:
		return defaultListLimit
	case n > maxListLimit:
		return maxListLimit
	}
	return n
}
