package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"jobledger/internal/model"
	"jobledger/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:svc_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Customer{},
		&model.Job{},
		&model.Settings{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testStack struct {
	db       *gorm.DB
	users    UserService
	customer CustomerService
	jobs     JobService
	settings SettingsService
	docs     DocumentService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	db := setupTestDB(t)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	jobRepo := repository.NewJobRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	return &testStack{
		db:       db,
		users:    NewUserService(userRepo),
		customer: NewCustomerService(customerRepo, txManager),
		jobs:     NewJobService(jobRepo, customerRepo, settingsRepo, txManager, nil),
		settings: NewSettingsService(settingsRepo),
		docs:     NewDocumentService(jobRepo, settingsRepo, txManager, nil, ""),
	}
}

// seedUser creates an account directly; password hashing is not under test.
func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Password: "hash"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCustomer(t *testing.T, s *testStack, userID, name string) *model.Customer {
	t.Helper()
	customer, err := s.customer.CreateCustomer(context.Background(), userID, CustomerRequest{
		Name:    name,
		Address: "4 High St\nTownsville",
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}
