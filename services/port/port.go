package port

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	portRepo "voltport/database/repository/port"
	"voltport/models"
	"voltport/utils"
)

const (
	portListCachePrefix = "ports:city:"
	portListCacheTTL    = 5 * time.Minute
	portListVersionKey  = "ports:list:version"
)

// CreatePortRequest carries the fields for a new charging port.
type CreatePortRequest struct {
	Name          string                 `json:"name" binding:"required"`
	City          string                 `json:"city" binding:"required"`
	Address       string                 `json:"address" binding:"required"`
	Latitude      float64                `json:"latitude"`
	Longitude     float64                `json:"longitude"`
	ConnectorType string                 `json:"connectorType"`
	PowerKW       float64                `json:"powerKw"`
	ImageURL      string                 `json:"imageUrl"`
	Schedules     []models.ScheduleEntry `json:"schedules" binding:"required"`
}

// UpdatePortRequest carries the mutable port fields; nil means unchanged.
type UpdatePortRequest struct {
	Name          *string                 `json:"name"`
	City          *string                 `json:"city"`
	Address       *string                 `json:"address"`
	Latitude      *float64                `json:"latitude"`
	Longitude     *float64                `json:"longitude"`
	ConnectorType *string                 `json:"connectorType"`
	PowerKW       *float64                `json:"powerKw"`
	ImageURL      *string                 `json:"imageUrl"`
	IsActive      *bool                   `json:"isActive"`
	Schedules     *[]models.ScheduleEntry `json:"schedules"`
}

type PortService interface {
	ListPorts(city string) ([]models.Port, error)
	GetPort(id string) (*models.Port, error)
	CreatePort(req CreatePortRequest) (*models.Port, error)
	UpdatePort(id string, req UpdatePortRequest) (*models.Port, error)
	DeletePort(id string) error
}

// DefaultPortService is the production implementation.
type DefaultPortService struct {
	Repo portRepo.PortRepository
}

// ValidateSchedules checks a weekly schedule: weekdays in range and unique,
// clock values well formed, and each day opening before it closes.
func ValidateSchedules(schedules []models.ScheduleEntry) error {
	seen := make(map[int]bool, len(schedules))
	for _, entry := range schedules {
		if entry.Weekday < 0 || entry.Weekday > 6 {
			return fmt.Errorf("weekday must be between 0 (Monday) and 6 (Sunday), got %d", entry.Weekday)
		}
		if seen[entry.Weekday] {
			return fmt.Errorf("duplicate schedule for weekday %d", entry.Weekday)
		}
		seen[entry.Weekday] = true

		open, err := models.ParseClock(entry.Open)
		if err != nil {
			return fmt.Errorf("invalid open time %q: %w", entry.Open, err)
		}
		close, err := models.ParseClock(entry.Close)
		if err != nil {
			return fmt.Errorf("invalid close time %q: %w", entry.Close, err)
		}
		if open >= close {
			return fmt.Errorf("open time %s must be before close time %s", entry.Open, entry.Close)
		}
	}
	return nil
}

// ListPorts returns ports, optionally filtered by city. Results are cached
// briefly per city.
func (s *DefaultPortService) ListPorts(city string) ([]models.Port, error) {
	logger := utils.GetLogger().With(zap.String("service", "port"))
	city = strings.TrimSpace(city)

	cache := utils.GetCacheClient()
	ctx := context.Background()

	version := "0"
	if v, err := cache.Get(ctx, portListVersionKey).Result(); err == nil {
		version = v
	}
	cacheKey := listCacheKey(version, city)

	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var ports []models.Port
		if err := json.Unmarshal([]byte(cached), &ports); err == nil {
			return ports, nil
		}
	}

	ports, err := s.Repo.GetAll(city)
	if err != nil {
		logger.Error("failed to list ports", zap.String("city", city), zap.Error(err))
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}

	if data, err := json.Marshal(ports); err == nil {
		if err := cache.Set(ctx, cacheKey, data, portListCacheTTL).Err(); err != nil {
			logger.Warn("failed to cache port list", zap.Error(err))
		}
	}
	return ports, nil
}

// GetPort fetches a single port by ID.
func (s *DefaultPortService) GetPort(id string) (*models.Port, error) {
	port, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("failed to fetch port", zap.String("portID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch port: %w", err)
	}
	if port == nil {
		return nil, fmt.Errorf("port with id %s not found", id)
	}
	return port, nil
}

// CreatePort registers a new charging port.
func (s *DefaultPortService) CreatePort(req CreatePortRequest) (*models.Port, error) {
	if len(req.Schedules) == 0 {
		return nil, fmt.Errorf("at least one schedule entry is required")
	}
	if err := ValidateSchedules(req.Schedules); err != nil {
		return nil, err
	}

	schedules := append([]models.ScheduleEntry(nil), req.Schedules...)
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].Weekday < schedules[j].Weekday })

	now := time.Now()
	port := &models.Port{
		ID:            uuid.New().String(),
		Name:          req.Name,
		City:          req.City,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ConnectorType: req.ConnectorType,
		PowerKW:       req.PowerKW,
		ImageURL:      req.ImageURL,
		IsActive:      true,
		Schedules:     schedules,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repo.Create(port); err != nil {
		utils.GetLogger().Error("failed to create port", zap.Error(err))
		return nil, fmt.Errorf("failed to create port: %w", err)
	}

	s.invalidateListCache()
	return port, nil
}

// UpdatePort applies the provided changes to an existing port.
func (s *DefaultPortService) UpdatePort(id string, req UpdatePortRequest) (*models.Port, error) {
	port, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("failed to fetch port", zap.String("portID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch port: %w", err)
	}
	if port == nil {
		return nil, fmt.Errorf("port with id %s not found", id)
	}

	if req.Name != nil {
		port.Name = *req.Name
	}
	if req.City != nil {
		port.City = *req.City
	}
	if req.Address != nil {
		port.Address = *req.Address
	}
	if req.Latitude != nil {
		port.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		port.Longitude = *req.Longitude
	}
	if req.ConnectorType != nil {
		port.ConnectorType = *req.ConnectorType
	}
	if req.PowerKW != nil {
		port.PowerKW = *req.PowerKW
	}
	if req.ImageURL != nil {
		port.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		port.IsActive = *req.IsActive
	}
	if req.Schedules != nil {
		if err := ValidateSchedules(*req.Schedules); err != nil {
			return nil, err
		}
		schedules := append([]models.ScheduleEntry(nil), (*req.Schedules)...)
		sort.Slice(schedules, func(i, j int) bool { return schedules[i].Weekday < schedules[j].Weekday })
		port.Schedules = schedules
	}

	port.UpdatedAt = time.Now()
	if err := s.Repo.Update(port); err != nil {
		utils.GetLogger().Error("failed to update port", zap.String("portID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update port: %w", err)
	}

	s.invalidateListCache()
	return port, nil
}

// DeletePort removes a port.
func (s *DefaultPortService) DeletePort(id string) error {
	port, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("failed to fetch port", zap.String("portID", id), zap.Error(err))
		return fmt.Errorf("failed to fetch port: %w", err)
	}
	if port == nil {
		return fmt.Errorf("port with id %s not found", id)
	}

	if err := s.Repo.Delete(id); err != nil {
		utils.GetLogger().Error("failed to delete port", zap.String("portID", id), zap.Error(err))
		return fmt.Errorf("failed to delete port: %w", err)
	}

	s.invalidateListCache()
	return nil
}

// listCacheKey scopes cached listings to a version so one invalidation
// covers every city filter at once.
func listCacheKey(version, city string) string {
	return portListCachePrefix + version + ":" + strings.ToLower(strings.TrimSpace(city))
}

// invalidateListCache bumps the listing version; superseded keys age out
// via the TTL.
func (s *DefaultPortService) invalidateListCache() {
	if err := utils.GetCacheClient().Incr(context.Background(), portListVersionKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate port cache", zap.Error(err))
	}
}
