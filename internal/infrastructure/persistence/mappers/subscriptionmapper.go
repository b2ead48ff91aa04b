package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"subtrack/internal/domain/subscription"
	vo "subtrack/internal/domain/subscription/valueobjects"
	"subtrack/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
	ToModels(entities []*subscription.Subscription) ([]*models.SubscriptionModel, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.ParseStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subscription status: %w", err)
	}

	currency, err := vo.ParseCurrency(model.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to parse currency: %w", err)
	}
	price, err := vo.NewMoneyFromCents(model.PriceCents, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to build price: %w", err)
	}

	cycle, err := vo.ParseBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("failed to parse billing cycle: %w", err)
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entity, err := subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:                model.ID,
		UserID:            model.UserID,
		Name:              model.Name,
		Price:             price,
		BillingCycle:      cycle,
		Status:            status,
		StartDate:         model.StartDate,
		NextBillingDate:   model.NextBillingDate,
		LastBillingDate:   model.LastBillingDate,
		RenewalNotifiedAt: model.RenewalNotifiedAt,
		TrialEndsAt:       model.TrialEndsAt,
		Metadata:          metadata,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadataJSON datatypes.JSON
	if metadata := entity.Metadata(); len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = data
	}

	return &models.SubscriptionModel{
		ID:                entity.ID(),
		UserID:            entity.UserID(),
		Name:              entity.Name(),
		PriceCents:        entity.Price().AmountInCents(),
		Currency:          entity.Price().Currency().String(),
		BillingCycle:      entity.BillingCycle().String(),
		Status:            entity.Status().String(),
		StartDate:         entity.StartDate(),
		NextBillingDate:   entity.NextBillingDate(),
		LastBillingDate:   entity.LastBillingDate(),
		RenewalNotifiedAt: entity.RenewalNotifiedAt(),
		TrialEndsAt:       entity.TrialEndsAt(),
		Metadata:          metadataJSON,
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(modelList []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}

func (m *SubscriptionMapperImpl) ToModels(entities []*subscription.Subscription) ([]*models.SubscriptionModel, error) {
	modelList := make([]*models.SubscriptionModel, 0, len(entities))
	for _, entity := range entities {
		model, err := m.ToModel(entity)
		if err != nil {
			return nil, err
		}
		if model != nil {
			modelList = append(modelList, model)
		}
	}
	return modelList, nil
}
