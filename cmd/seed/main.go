// seed pobla la base con datos de desarrollo: un usuario admin y productos de muestra.
//
// Uso: go run ./cmd/seed
// Idempotente: si el admin o los productos ya existen, los salta.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	// Usuario admin (password: admin123, solo para desarrollo)
	existing, err := userRepo.FindByUsername("admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar admin: %v\n", err)
		os.Exit(1)
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Hashear password: %v\n", err)
			os.Exit(1)
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Username:     "admin",
			PasswordHash: string(hash),
			Name:         "Administrador",
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Usuario admin creado (password: admin123)")
	} else {
		fmt.Println("Usuario admin ya existe, se omite")
	}

	// Productos de muestra
	samples := []struct {
		name        string
		description string
		quantity    int64
		price       string
	}{
		{"Tornillo hexagonal 1/4", "Caja x100, acero galvanizado", 120, "8.50"},
		{"Pintura blanca 1gal", "Vinilo tipo 1 interior", 35, "42.00"},
		{"Cemento gris 50kg", "Uso general", 8, "31.90"},
		{"Cable THW 12 AWG", "Rollo x100m", 15, "2.50"},
	}

	created := 0
	for _, s := range samples {
		found, err := productRepo.FindByNameContains(s.name, 1, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Buscar producto %q: %v\n", s.name, err)
			os.Exit(1)
		}
		if len(found) > 0 {
			continue
		}
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Precio inválido %q: %v\n", s.price, err)
			os.Exit(1)
		}
		now := time.Now()
		p := &entity.Product{
			ID:          uuid.New().String(),
			Name:        s.name,
			Description: s.description,
			Quantity:    s.quantity,
			Price:       price,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := productRepo.Create(p); err != nil {
			fmt.Fprintf(os.Stderr, "Crear producto %q: %v\n", s.name, err)
			os.Exit(1)
		}
		created++
	}
	fmt.Printf("Productos de muestra creados: %d\n", created)
}
