package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/repository"
)

const dashboardCacheTTL = 5 * time.Minute

// OrderRevenue is one order's split for a seller, as shown on the seller's
// per-order page.
type OrderRevenue struct {
	OrderID     uuid.UUID    `json:"order_id"`
	OrderStatus string       `json:"order_status"`
	Items       int          `json:"items"`
	Split       RevenueSplit `json:"split"`
}

// DashboardStats aggregates a seller's revenue across all eligible orders.
// It sums the same per-order Allocate splits the order page shows, so the
// dashboard total always equals the sum of the order pages.
type DashboardStats struct {
	StoreID    uuid.UUID    `json:"store_id"`
	OrderCount int          `json:"order_count"`
	UnitsSold  int          `json:"units_sold"`
	Revenue    RevenueSplit `json:"revenue"`
}

// SellerService serves seller-facing revenue reporting.
type SellerService struct {
	orders  repository.OrderRepository
	catalog repository.CatalogRepository
	cache   *redis.Client // nil disables caching
	logger  *zap.Logger
}

func NewSellerService(
	orders repository.OrderRepository,
	catalog repository.CatalogRepository,
	cache *redis.Client,
	logger *zap.Logger,
) *SellerService {
	return &SellerService{
		orders:  orders,
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

// OrderRevenue computes the calling seller's split of one order.
func (s *SellerService) OrderRevenue(ctx context.Context, orderID, userID uuid.UUID) (*OrderRevenue, *ServiceError) {
	store, svcErr := s.storeFor(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Order not found")
		}
		s.logger.Error("Order lookup failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, errInternal("Failed to load order")
	}

	sellerItems := itemsOfStore(order.Items, store.ID)
	if len(sellerItems) == 0 {
		return nil, errNotFound("Order has no items from this store")
	}

	return &OrderRevenue{
		OrderID:     order.ID,
		OrderStatus: order.Status,
		Items:       len(sellerItems),
		Split:       Allocate(sellerItems, order.Total, order.ServiceFee),
	}, nil
}

// DashboardStats aggregates revenue over the seller's eligible orders,
// cache-aside through redis with a short TTL.
func (s *SellerService) DashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, *ServiceError) {
	store, svcErr := s.storeFor(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	cacheKey := "seller:dashboard:" + store.ID.String()
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var stats DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	orders, err := s.orders.FindEligibleByStore(ctx, store.ID)
	if err != nil {
		s.logger.Error("Eligible order lookup failed", zap.String("store_id", store.ID.String()), zap.Error(err))
		return nil, errInternal("Failed to load orders")
	}

	stats := DashboardStats{StoreID: store.ID}
	for _, order := range orders {
		sellerItems := itemsOfStore(order.Items, store.ID)
		if len(sellerItems) == 0 {
			continue
		}
		split := Allocate(sellerItems, order.Total, order.ServiceFee)
		stats.OrderCount++
		stats.Revenue.Gross += split.Gross
		stats.Revenue.Fee += split.Fee
		stats.Revenue.Net += split.Net
		for _, item := range sellerItems {
			stats.UnitsSold += item.Quantity
		}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, dashboardCacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache dashboard stats", zap.Error(err))
			}
		}
	}

	return &stats, nil
}

func (s *SellerService) storeFor(ctx context.Context, userID uuid.UUID) (*models.Store, *ServiceError) {
	store, err := s.catalog.FindStoreByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Store not found for user")
		}
		s.logger.Error("Store lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, errInternal("Failed to load store")
	}
	return store, nil
}

func itemsOfStore(items []models.OrderItem, storeID uuid.UUID) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.StoreID == storeID {
			out = append(out, item)
		}
	}
	return out
}
