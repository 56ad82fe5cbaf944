package controller

import (
	"context"
	"io"

	"github.com/alimikegami/e-commerce/shop-service/internal/domain"
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) Register(ctx context.Context, req dto.SignupRequest) (dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.TokenResponse), args.Error(1)
}

func (m *UserServiceMock) Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.TokenResponse), args.Error(1)
}

type ProductServiceMock struct {
	mock.Mock
}

func (m *ProductServiceMock) AddProduct(ctx context.Context, req dto.ProductRequest) (dto.AddProductResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.AddProductResponse), args.Error(1)
}

func (m *ProductServiceMock) RemoveProduct(ctx context.Context, id int64) (dto.RemoveProductResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.RemoveProductResponse), args.Error(1)
}

func (m *ProductServiceMock) GetAllProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.ProductResponse), args.Error(1)
}

func (m *ProductServiceMock) GetNewCollection(ctx context.Context) ([]dto.ProductResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.ProductResponse), args.Error(1)
}

func (m *ProductServiceMock) GetPopularInCategory(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]dto.ProductResponse), args.Error(1)
}

func (m *ProductServiceMock) UploadImage(ctx context.Context, originalName string, r io.Reader) (dto.UploadResponse, error) {
	args := m.Called(ctx, originalName, r)
	return args.Get(0).(dto.UploadResponse), args.Error(1)
}

func (m *ProductServiceMock) ReconcileSequence() {
	m.Called()
}

type CartServiceMock struct {
	mock.Mock
}

func (m *CartServiceMock) AddItem(ctx context.Context, userID string, itemID int) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *CartServiceMock) RemoveItem(ctx context.Context, userID string, itemID int) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *CartServiceMock) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Cart), args.Error(1)
}
