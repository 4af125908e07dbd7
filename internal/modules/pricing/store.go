// README: Pricing settings document backed by Firestore (settings/pricing).
package pricing

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	settingsCollection = "settings"
	pricingDocument    = "pricing"
)

type FirestoreSettingsStore struct {
	client *firestore.Client
}

func NewSettingsStore(client *firestore.Client) *FirestoreSettingsStore {
	return &FirestoreSettingsStore{client: client}
}

func (s *FirestoreSettingsStore) doc() *firestore.DocumentRef {
	return s.client.Collection(settingsCollection).Doc(pricingDocument)
}

// Load returns empty overrides when the document does not exist yet.
func (s *FirestoreSettingsStore) Load(ctx context.Context) (Overrides, error) {
	snap, err := s.doc().Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Overrides{}, nil
	}
	if err != nil {
		return Overrides{}, fmt.Errorf("get pricing settings: %w", err)
	}
	var o Overrides
	if err := snap.DataTo(&o); err != nil {
		return Overrides{}, fmt.Errorf("decode pricing settings: %w", err)
	}
	return o, nil
}

// Save replaces every key present in o as a whole. Keys absent from o are left alone.
func (s *FirestoreSettingsStore) Save(ctx context.Context, o Overrides) error {
	data := map[string]interface{}{}
	var paths []firestore.FieldPath

	if o.FixedZoneKm != nil {
		data["fixedZoneKm"] = *o.FixedZoneKm
		paths = append(paths, firestore.FieldPath{"fixedZoneKm"})
	}
	paths = appendRows(data, paths, "cargo", o.Cargo)
	paths = appendRows(data, paths, "evacuator", o.Evacuator)
	paths = appendRows(data, paths, "crane", o.Crane)
	paths = appendRows(data, paths, "craneFloors", o.CraneFloors)

	if len(paths) == 0 {
		return nil
	}
	if _, err := s.doc().Set(ctx, data, firestore.Merge(paths...)); err != nil {
		return fmt.Errorf("save pricing settings: %w", err)
	}
	return nil
}

func appendRows[V any](data map[string]interface{}, paths []firestore.FieldPath, field string, rows map[string]V) []firestore.FieldPath {
	if len(rows) == 0 {
		return paths
	}
	nested := make(map[string]interface{}, len(rows))
	for key, row := range rows {
		nested[key] = row
		paths = append(paths, firestore.FieldPath{field, key})
	}
	data[field] = nested
	return paths
}
