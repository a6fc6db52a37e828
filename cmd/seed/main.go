// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"confeito/internal/core/apperror"
	"confeito/internal/domain/auth"
	"confeito/internal/domain/catalogs/client"
	"confeito/internal/domain/catalogs/ingredient"
	"confeito/internal/domain/catalogs/recipe"
	"confeito/internal/domain/documents/expense"
	"confeito/internal/domain/documents/purchase"
	"confeito/internal/infrastructure/storage/postgres"
	"confeito/internal/infrastructure/storage/postgres/auth_repo"
	"confeito/internal/infrastructure/storage/postgres/catalog_repo"
	"confeito/internal/infrastructure/storage/postgres/document_repo"
	"confeito/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := postgres.Bootstrap(ctx, txManager); err != nil {
		log.Fatalw("failed to bootstrap schema", "error", err)
	}

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	repo := auth_repo.NewUserRepo(txManager)

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		log.Infow("admin user already exists", "username", username)
		return nil
	} else if !apperror.IsNotFound(err) {
		return err
	}

	u, err := auth.NewUser(username, password)
	if err != nil {
		return err
	}
	if err := txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, u)
	}); err != nil {
		return err
	}

	log.Infow("admin user created", "username", username)
	return nil
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	ingredientRepo := catalog_repo.NewIngredientRepo(txManager)
	clientRepo := catalog_repo.NewClientRepo(txManager)
	recipeRepo := catalog_repo.NewRecipeRepo(txManager)
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	expenseRepo := document_repo.NewExpenseRepo(txManager)

	ingredients := ingredient.NewService(ingredientRepo, txManager)
	clients := client.NewService(clientRepo, txManager)
	recipes := recipe.NewService(recipeRepo, ingredientRepo, txManager)
	purchases := purchase.NewService(purchaseRepo, clientRepo, recipeRepo, txManager)
	expenses := expense.NewService(expenseRepo, txManager)

	// Ingredient ledger
	flour, err := ingredients.AddOrUpdate(ctx, "wheat flour", "kg",
		decimal.NewFromInt(50), decimal.NewFromInt(25))
	if err != nil {
		return err
	}
	sugar, err := ingredients.AddOrUpdate(ctx, "sugar", "kg",
		decimal.NewFromInt(30), decimal.NewFromInt(10))
	if err != nil {
		return err
	}
	butter, err := ingredients.AddOrUpdate(ctx, "butter", "kg",
		decimal.NewFromInt(80), decimal.NewFromInt(5))
	if err != nil {
		return err
	}

	// Clients
	maria := client.New("Maria Silva", time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC), "Rua das Flores 12")
	if err := clients.Create(ctx, maria); err != nil {
		return err
	}
	joao := client.New("Joao Santos", time.Date(1985, time.November, 2, 0, 0, 0, 0, time.UTC), "")
	if err := clients.Create(ctx, joao); err != nil {
		return err
	}

	// Recipes
	cake := recipe.New("vanilla cake", decimal.NewFromInt(10),
		decimal.NewFromInt(10), decimal.NewFromInt(5), 8)
	cake.AddLine(flour.ID, decimal.NewFromFloat(0.5))
	cake.AddLine(sugar.ID, decimal.NewFromFloat(0.3))
	cake.AddLine(butter.ID, decimal.NewFromFloat(0.2))
	if err := recipes.CreateWithLines(ctx, cake); err != nil {
		return err
	}

	brigadeiro := recipe.New("brigadeiro box", decimal.NewFromInt(25),
		decimal.NewFromInt(15), decimal.NewFromInt(5), 4)
	brigadeiro.AddLine(sugar.ID, decimal.NewFromFloat(0.4))
	brigadeiro.AddLine(butter.ID, decimal.NewFromFloat(0.1))
	if err := recipes.CreateWithLines(ctx, brigadeiro); err != nil {
		return err
	}

	// A purchase with the discount flag on
	order := purchase.New(maria.ID)
	order.FlatDiscount = decimal.NewFromInt(5)
	order.PctDiscount = decimal.NewFromInt(10)
	order.DiscountEnabled = true
	order.AddItem(cake.ID, decimal.NewFromInt(2))
	order.AddItem(brigadeiro.ID, decimal.NewFromInt(1))
	total, err := purchases.Create(ctx, order)
	if err != nil {
		return err
	}
	log.Infow("demo purchase created", "total", total.String())

	// Expenses
	oven := expense.New("stand mixer", decimal.NewFromInt(300), expense.CategoryInvestment)
	if err := expenses.Create(ctx, oven); err != nil {
		return err
	}
	boxes := expense.New("packaging boxes", decimal.NewFromInt(40), expense.CategoryMaterial)
	if err := expenses.Create(ctx, boxes); err != nil {
		return err
	}

	log.Info("demo data created")
	return nil
}
