package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"cryptofolio-backend/internal/domain"
)

// FirestoreWalletRepository stores each user's wallet as a single document
// at wallets/{uid} with the entry list under a "wallet" field, the exact
// shape the web dashboard reads and writes. Saves merge so sibling fields
// on the document survive.
type FirestoreWalletRepository struct {
	client *firestore.Client
}

func NewFirestoreWalletRepository(client *firestore.Client) *FirestoreWalletRepository {
	return &FirestoreWalletRepository{client: client}
}

type walletDocument struct {
	Wallet []domain.WalletEntry `firestore:"wallet"`
}

func (r *FirestoreWalletRepository) Load(ctx context.Context, userID string) ([]domain.WalletEntry, error) {
	snap, err := r.client.Collection("wallets").Doc(userID).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return []domain.WalletEntry{}, nil
		}
		return nil, fmt.Errorf("%w: load wallet: %v", domain.ErrUpstream, err)
	}

	var doc walletDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode wallet: %v", domain.ErrUpstream, err)
	}
	if doc.Wallet == nil {
		return []domain.WalletEntry{}, nil
	}
	return doc.Wallet, nil
}

func (r *FirestoreWalletRepository) Save(ctx context.Context, userID string, entries []domain.WalletEntry) error {
	// MergeAll requires map data, not a struct.
	_, err := r.client.Collection("wallets").Doc(userID).Set(ctx, map[string]interface{}{"wallet": entries}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("%w: save wallet: %v", domain.ErrUpstream, err)
	}
	return nil
}
