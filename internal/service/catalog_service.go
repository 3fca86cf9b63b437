package service

import "quickbite/internal/domain"

// CatalogService is a read-only view over the restaurant catalog.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListRestaurants() ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants()
}

func (s *CatalogService) GetRestaurant(id string) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(id)
}

func (s *CatalogService) ListMenu(restaurantID string) ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(restaurantID)
}

func (s *CatalogService) GetMenuItem(id string) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(id)
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
