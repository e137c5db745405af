package settings

import (
	"context"

	"github.com/chatwidgetai/widget-relay/internal/loaders"
)

// Store is the slice of the settings datastore this endpoint needs
type Store interface {
	GetWidgetSettings(ctx context.Context, uid string) (*loaders.WidgetSettingsRecord, error)
	UpsertWidgetSettings(ctx context.Context, rec *loaders.WidgetSettingsRecord) error
}

// Service resolves tenant widget configuration
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Resolve fetches the stored configuration for one tenant
func (s *Service) Resolve(ctx context.Context, uid string) (*Response, error) {
	rec, err := s.store.GetWidgetSettings(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &Response{
		PrimaryColor: rec.PrimaryColor,
		BusinessName: rec.BusinessName,
		BusinessInfo: rec.BusinessInfo,
		SalesRepName: rec.SalesRepName,
	}, nil
}

// Save writes one tenant's configuration wholesale
func (s *Service) Save(ctx context.Context, req *UpsertRequest) error {
	return s.store.UpsertWidgetSettings(ctx, &loaders.WidgetSettingsRecord{
		UserID:       req.UID,
		PrimaryColor: req.PrimaryColor,
		BusinessName: req.BusinessName,
		BusinessInfo: req.BusinessInfo,
		SalesRepName: req.SalesRepName,
	})
}
