package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"servicehub/internal/config"
	"servicehub/internal/database"
	"servicehub/internal/domain"
	"servicehub/internal/pkg/jwt"
)

type seedAccount struct {
	email    string
	password string
	name     string
	role     domain.Role
	approval domain.ApprovalStatus
}

var accounts = []seedAccount{
	{"admin@servicehub.local", "admin123", "Admin", domain.RoleAdmin, ""},
	{"customer@servicehub.local", "customer123", "Casey Customer", domain.RoleCustomer, ""},
	{"provider@servicehub.local", "provider123", "Pat Provider", domain.RoleProvider, domain.ApprovalApproved},
	{"pending@servicehub.local", "provider123", "Pending Provider", domain.RoleProvider, domain.ApprovalPending},
}

var listings = []domain.ServiceListing{
	{Title: "Deep cleaning", Category: "cleaning", Price: 800, Description: "Full apartment deep clean"},
	{Title: "Leak repair", Category: "plumbing", Price: 450, Description: "Sink and pipe leaks"},
	{Title: "Wall painting", Category: "repair", Price: 1200},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	var provider *domain.Account
	for _, sa := range accounts {
		a, err := upsertAccount(db, sa)
		if err != nil {
			log.Fatalf("seed %s: %v", sa.email, err)
		}
		if sa.role == domain.RoleProvider && sa.approval == domain.ApprovalApproved {
			provider = a
		}

		tok, err := tokens.Issue(domain.Actor{ID: a.ID, Role: a.Role})
		if err != nil {
			log.Fatalf("token for %s: %v", sa.email, err)
		}
		fmt.Printf("%-10s id=%-4d %s\n  token: %s\n", a.Role, a.ID, a.Email, tok)
	}

	for _, l := range listings {
		l.ProviderID = provider.ID
		l.IsActive = true
		err := db.Where(domain.ServiceListing{ProviderID: l.ProviderID, Title: l.Title}).
			FirstOrCreate(&l).Error
		if err != nil {
			log.Fatalf("seed listing %q: %v", l.Title, err)
		}
		fmt.Printf("service    id=%-4d %s (%.0f)\n", l.ID, l.Title, l.Price)
	}

	log.Println("seed completed")
}

func upsertAccount(db *gorm.DB, sa seedAccount) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(sa.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	status := domain.AccountActive
	if sa.role == domain.RoleProvider && sa.approval != domain.ApprovalApproved {
		status = domain.AccountPending
	}

	a := &domain.Account{
		Email:          sa.email,
		PasswordHash:   string(hash),
		Name:           sa.name,
		Role:           sa.role,
		Status:         status,
		ApprovalStatus: sa.approval,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role", "status", "approval_status"}),
	}).Create(a).Error
	if err != nil {
		return nil, err
	}

	// The upsert leaves ID unset on conflict for some drivers.
	if err := db.Where("email = ?", sa.email).First(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}
