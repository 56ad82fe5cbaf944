package service

import (
	"context"

	"github.com/alimikegami/e-commerce/shop-service/internal/domain"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/metrics"
	"github.com/alimikegami/e-commerce/shop-service/internal/repository"
	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

type CartServiceImpl struct {
	repo repository.UserRepository
}

func CreateCartService(repo repository.UserRepository) CartService {
	return &CartServiceImpl{repo: repo}
}

func (s *CartServiceImpl) AddItem(ctx context.Context, userID string, itemID int) (err error) {
	if err = domain.ValidateItemID(itemID); err != nil {
		return errs.ErrInvalidCartItem
	}

	if err = s.repo.IncrementCartItem(ctx, userID, itemID); err != nil {
		return
	}

	metrics.CartMutations.WithLabelValues("add").Inc()
	log.Ctx(ctx).Info().Str("component", "AddItem").Int("item_id", itemID).Msg("Added")

	return nil
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, userID string, itemID int) (err error) {
	if err = domain.ValidateItemID(itemID); err != nil {
		return errs.ErrInvalidCartItem
	}

	if err = s.repo.DecrementCartItem(ctx, userID, itemID); err != nil {
		return
	}

	metrics.CartMutations.WithLabelValues("remove").Inc()
	log.Ctx(ctx).Info().Str("component", "RemoveItem").Int("item_id", itemID).Msg("Removed")

	return nil
}

func (s *CartServiceImpl) GetCart(ctx context.Context, userID string) (cart domain.Cart, err error) {
	return s.repo.GetCart(ctx, userID)
}
