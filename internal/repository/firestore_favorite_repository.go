package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"cryptofolio-backend/internal/domain"
)

// FirestoreFavoriteRepository stores each user's favorite coin ids as a
// single document at favorites/{uid}.
type FirestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) *FirestoreFavoriteRepository {
	return &FirestoreFavoriteRepository{client: client}
}

type favoriteDocument struct {
	CoinIDs []string `firestore:"coinIds"`
}

func (r *FirestoreFavoriteRepository) List(ctx context.Context, userID string) ([]string, error) {
	snap, err := r.client.Collection("favorites").Doc(userID).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: load favorites: %v", domain.ErrUpstream, err)
	}

	var doc favoriteDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode favorites: %v", domain.ErrUpstream, err)
	}
	if doc.CoinIDs == nil {
		return []string{}, nil
	}
	return doc.CoinIDs, nil
}

func (r *FirestoreFavoriteRepository) Save(ctx context.Context, userID string, coinIDs []string) error {
	_, err := r.client.Collection("favorites").Doc(userID).Set(ctx, map[string]interface{}{"coinIds": coinIDs}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("%w: save favorites: %v", domain.ErrUpstream, err)
	}
	return nil
}
