package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

const (
	recentProductsLimit = 5
	activityLimit       = 10
)

type dashboardService struct {
	products ports.ResourceGateway[domain.Product]
	users    ports.ResourceGateway[domain.User]
	journal  ports.Journal
	log      zerolog.Logger
}

// NewDashboardService returns a DashboardService. journal may be nil.
func NewDashboardService(
	products ports.ResourceGateway[domain.Product],
	users ports.ResourceGateway[domain.User],
	journal ports.Journal,
	log zerolog.Logger,
) ports.DashboardService {
	return &dashboardService{products: products, users: users, journal: journal, log: log}
}

// Dashboard counts products and users live; orders, revenue and the charts
// are sample data. Only the products call is required.
func (s *dashboardService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list products: %w", err)
	}

	totalUsers := 0
	if users, err := s.users.List(ctx); err != nil {
		s.log.Warn().Err(err).Msg("dashboard: user count unavailable")
	} else {
		totalUsers = len(users)
	}

	recent := products
	if len(recent) > recentProductsLimit {
		recent = recent[:recentProductsLimit]
	}

	d := &domain.Dashboard{
		Stats: domain.DashboardStats{
			TotalProducts: len(products),
			TotalUsers:    totalUsers,
			TotalOrders:   domain.SampleTotalOrders,
			TotalRevenue:  domain.SampleTotalRevenue,
		},
		RecentProducts: append([]domain.Product{}, recent...),
		Sales:          domain.SampleSales,
		Categories:     domain.SampleCategories,
		Activity:       []domain.JournalEntry{},
	}

	if s.journal != nil {
		entries, err := s.journal.Recent(ctx, activityLimit)
		if err != nil {
			s.log.Warn().Err(err).Msg("dashboard: activity unavailable")
		} else if entries != nil {
			d.Activity = entries
		}
	}
	return d, nil
}
