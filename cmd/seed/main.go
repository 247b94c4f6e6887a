package main

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"fin-assistant/internal/models"
	"fin-assistant/internal/repository"
	"fin-assistant/pkg/auth"
	"fin-assistant/pkg/config"
	"fin-assistant/pkg/logger"
	"fin-assistant/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Named("seed")

	ds, err := loadDataset(demoJSON)
	if err != nil {
		appLogger.Fatal("Invalid demo dataset", zap.Error(err))
	}

	// Seeding always needs the schema
	cfg.Database.Migrate = true
	ctx := context.Background()
	db, err := postgres.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	s := &seeder{
		users:        repository.NewUserRepository(db, appLogger),
		wallets:      repository.NewWalletRepository(db, appLogger),
		categories:   repository.NewCategoryRepository(db, appLogger),
		transactions: repository.NewTransactionRepository(db, appLogger),
		logger:       appLogger,
	}

	appLogger.Info("Starting database seeding...")
	if err := s.seed(ctx, ds, time.Now()); err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}
	appLogger.Info("Database seeding completed successfully!")
}

type seeder struct {
	users        *repository.UserRepository
	wallets      *repository.WalletRepository
	categories   *repository.CategoryRepository
	transactions *repository.TransactionRepository
	logger       *zap.Logger
}

func (s *seeder) seed(ctx context.Context, ds *demoDataset, now time.Time) error {
	existing, err := s.users.GetByUsername(ctx, ds.User.Username)
	switch {
	case err == nil:
		s.logger.Info("Demo user already present, skipping", zap.String("user_id", existing.ID.String()))
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	hash, err := auth.HashPassword(ds.User.Password)
	if err != nil {
		return err
	}
	user := &models.User{
		ID:        uuid.New(),
		Username:  ds.User.Username,
		Email:     ds.User.Email,
		FullName:  ds.User.FullName,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	walletIDs := make(map[string]uuid.UUID, len(ds.Wallets))
	for i, w := range ds.Wallets {
		wallet := &models.Wallet{
			ID:      uuid.New(),
			UserID:  user.ID,
			Name:    w.Name,
			Balance: w.Balance,
			// keep file order when listing by created_at
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
		if err := s.wallets.Create(ctx, wallet); err != nil {
			return err
		}
		walletIDs[w.Name] = wallet.ID
	}

	categoryIDs, err := s.seedCategories(ctx, ds.Categories)
	if err != nil {
		return err
	}

	txs, err := ds.buildTransactions(now, walletIDs, categoryIDs)
	if err != nil {
		return err
	}
	if err := s.transactions.CreateBatch(ctx, txs); err != nil {
		return err
	}

	s.logger.Info("Demo data inserted",
		zap.String("email", user.Email),
		zap.Int("wallets", len(walletIDs)),
		zap.Int("categories", len(categoryIDs)),
		zap.Int("transactions", len(txs)),
	)
	return nil
}

func (s *seeder) seedCategories(ctx context.Context, groups map[string][]string) (map[categoryKey]uuid.UUID, error) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	ids := make(map[categoryKey]uuid.UUID)
	for _, groupName := range names {
		group := &models.Group{ID: uuid.New(), Name: groupName}
		if err := s.categories.CreateGroup(ctx, group); err != nil {
			return nil, err
		}
		for _, name := range groups[groupName] {
			c := &models.Category{ID: uuid.New(), GroupID: group.ID, Name: name}
			if err := s.categories.CreateCategory(ctx, c); err != nil {
				return nil, err
			}
			ids[categoryKey{groupName, name}] = c.ID
		}
	}
	return ids, nil
}
