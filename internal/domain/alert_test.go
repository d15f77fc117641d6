package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlert_Validate(t *testing.T) {
	tests := []struct {
		name    string
		alert   Alert
		wantErr bool
	}{
		{name: "valid", alert: Alert{CoinID: "bitcoin", MinPrice: 100, MaxPrice: 200}},
		{name: "equal bounds", alert: Alert{CoinID: "bitcoin", MinPrice: 150, MaxPrice: 150}},
		{name: "missing coin id", alert: Alert{MinPrice: 100, MaxPrice: 200}, wantErr: true},
		{name: "negative min", alert: Alert{CoinID: "bitcoin", MinPrice: -1, MaxPrice: 200}, wantErr: true},
		{name: "negative max", alert: Alert{CoinID: "bitcoin", MinPrice: 0, MaxPrice: -1}, wantErr: true},
		{name: "min above max", alert: Alert{CoinID: "bitcoin", MinPrice: 300, MaxPrice: 200}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.alert.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlert_Triggered(t *testing.T) {
	a := Alert{CoinID: "bitcoin", MinPrice: 100, MaxPrice: 200}

	assert.True(t, a.Triggered(99.99))
	assert.True(t, a.Triggered(200.01))
	assert.False(t, a.Triggered(100))
	assert.False(t, a.Triggered(150))
	assert.False(t, a.Triggered(200))
}
