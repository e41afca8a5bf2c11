package main

import (
	"context"
	"time"

	"groomroute_backend/internal/routing"
	"groomroute_backend/platform/config"
	"groomroute_backend/platform/db"
	"groomroute_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type customerAddress struct {
	id      uuid.UUID
	address string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting customer geocode backfill")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	provider, err := routing.NewProvider(cfg, log)
	if err != nil {
		log.Error("failed to initialize routing provider", "error", err)
		panic("failed to initialize routing provider: " + err.Error())
	}

	const batchSize = 25
	for {
		customers, err := listCustomersMissingCoordinates(ctx, pool, batchSize)
		if err != nil {
			log.Error("failed to list customers", "error", err)
			return
		}
		if len(customers) == 0 {
			log.Info("no customers left to geocode")
			return
		}

		progress := false

		for _, customer := range customers {
			if customer.address == "" {
				log.Info("skipping customer without address", "customerId", customer.id)
				continue
			}

			result := provider.Geocode(ctx, customer.address)
			if result.Status == routing.GeocodeFailed {
				log.Info("no geocode result", "customerId", customer.id, "address", customer.address)
				time.Sleep(time.Second)
				continue
			}

			if err := updateCustomerCoordinates(ctx, pool, customer.id, result.Lat, result.Lng); err != nil {
				log.Error("failed to update customer", "customerId", customer.id, "error", err)
				time.Sleep(time.Second)
				continue
			}

			log.Info("customer geocoded",
				"customerId", customer.id, "lat", result.Lat, "lng", result.Lng, "status", result.Status)
			progress = true
			time.Sleep(time.Second)
		}

		if !progress {
			log.Info("no geocode progress in batch, stopping")
			return
		}
	}
}

func listCustomersMissingCoordinates(ctx context.Context, pool *pgxpool.Pool, limit int) ([]customerAddress, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, COALESCE(address, '')
		FROM customers
		WHERE lat IS NULL OR lng IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]customerAddress, 0)
	for rows.Next() {
		var customer customerAddress
		if err := rows.Scan(&customer.id, &customer.address); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return customers, nil
}

func updateCustomerCoordinates(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, lat float64, lng float64) error {
	_, err := pool.Exec(ctx, `
		UPDATE customers
		SET lat = $2, lng = $3, updated_at = now()
		WHERE id = $1
	`, id, lat, lng)
	return err
}
