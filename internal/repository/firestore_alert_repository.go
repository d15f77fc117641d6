package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"cryptofolio-backend/internal/domain"
)

// FirestoreAlertRepository stores each user's price alerts as a single
// document at alerts/{uid}.
type FirestoreAlertRepository struct {
	client *firestore.Client
}

func NewFirestoreAlertRepository(client *firestore.Client) *FirestoreAlertRepository {
	return &FirestoreAlertRepository{client: client}
}

type alertDocument struct {
	Alerts []domain.Alert `firestore:"alerts"`
}

func (r *FirestoreAlertRepository) List(ctx context.Context, userID string) ([]domain.Alert, error) {
	snap, err := r.client.Collection("alerts").Doc(userID).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return []domain.Alert{}, nil
		}
		return nil, fmt.Errorf("%w: load alerts: %v", domain.ErrUpstream, err)
	}

	var doc alertDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode alerts: %v", domain.ErrUpstream, err)
	}
	if doc.Alerts == nil {
		return []domain.Alert{}, nil
	}
	return doc.Alerts, nil
}

func (r *FirestoreAlertRepository) Save(ctx context.Context, userID string, alerts []domain.Alert) error {
	_, err := r.client.Collection("alerts").Doc(userID).Set(ctx, map[string]interface{}{"alerts": alerts}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("%w: save alerts: %v", domain.ErrUpstream, err)
	}
	return nil
}

// All walks the alerts collection for the background checker. Document ids
// are user ids.
func (r *FirestoreAlertRepository) All(ctx context.Context) (map[string][]domain.Alert, error) {
	all := make(map[string][]domain.Alert)
	iter := r.client.Collection("alerts").Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: iterate alerts: %v", domain.ErrUpstream, err)
		}

		var doc alertDocument
		if err := snap.DataTo(&doc); err != nil {
			continue
		}
		if len(doc.Alerts) > 0 {
			all[snap.Ref.ID] = doc.Alerts
		}
	}
	return all, nil
}
