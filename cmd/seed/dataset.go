package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"fin-assistant/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:embed demo.json
var demoJSON []byte

type demoDataset struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	} `json:"user"`
	Wallets []struct {
		Name    string          `json:"name"`
		Balance decimal.Decimal `json:"balance"`
	} `json:"wallets"`
	// Categories maps a group name to its category names.
	Categories   map[string][]string `json:"categories"`
	Transactions []demoTransaction   `json:"transactions"`
}

// demoTransaction is dated relative to the seeding month so that questions
// like "tháng này" have data. Day 0 leaves the date empty.
type demoTransaction struct {
	Wallet    string          `json:"wallet"`
	Group     string          `json:"group"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	MonthsAgo int             `json:"months_ago"`
	Day       int             `json:"day"`
	Note      string          `json:"note"`
}

func loadDataset(data []byte) (*demoDataset, error) {
	var ds demoDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if ds.User.Username == "" || ds.User.Email == "" {
		return nil, fmt.Errorf("dataset user needs a username and an email")
	}
	if len(ds.Wallets) == 0 {
		return nil, fmt.Errorf("dataset has no wallets")
	}
	return &ds, nil
}

func (t demoTransaction) date(now time.Time) time.Time {
	if t.Day == 0 {
		return time.Time{}
	}
	first := time.Date(now.Year(), now.Month()-time.Month(t.MonthsAgo), 1, 0, 0, 0, 0, time.UTC)
	d := first.AddDate(0, 0, t.Day-1)
	if d.Month() != first.Month() {
		d = first.AddDate(0, 1, -1)
	}
	return d
}

// categoryKey identifies a category by group and name.
type categoryKey struct{ group, name string }

// buildTransactions resolves wallet and category names to ids.
func (ds *demoDataset) buildTransactions(
	now time.Time,
	wallets map[string]uuid.UUID,
	categories map[categoryKey]uuid.UUID,
) ([]*models.Transaction, error) {
	out := make([]*models.Transaction, 0, len(ds.Transactions))
	for i, t := range ds.Transactions {
		walletID, ok := wallets[t.Wallet]
		if !ok {
			return nil, fmt.Errorf("transaction %d: unknown wallet %q", i, t.Wallet)
		}
		tx := &models.Transaction{
			ID:        uuid.New(),
			WalletID:  walletID,
			Amount:    t.Amount,
			Date:      t.date(now),
			Note:      t.Note,
			CreatedAt: now,
		}
		if t.Category != "" {
			id, ok := categories[categoryKey{t.Group, t.Category}]
			if !ok {
				return nil, fmt.Errorf("transaction %d: unknown category %s/%s", i, t.Group, t.Category)
			}
			tx.CategoryID = &id
		}
		out = append(out, tx)
	}
	return out, nil
}
