package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alimikegami/e-commerce/shop-service/config"
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/storage"
	"github.com/alimikegami/e-commerce/shop-service/internal/middleware"
	"github.com/alimikegami/e-commerce/shop-service/internal/repository"
	"github.com/alimikegami/e-commerce/shop-service/internal/service"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type IntegrationTestSuite struct {
	suite.Suite
	container *tcmongodb.MongoDBContainer
	db        *mongo.Database
	server    *httptest.Server
}

func TestIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container backed tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := tcmongodb.Run(ctx, "mongo:7")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(ctx)
	s.Require().NoError(err)

	s.db, err = mongodb.ConnectToMongoDB(ctx, uri, "shop_integration")
	s.Require().NoError(err)
	s.Require().NoError(mongodb.EnsureIndexes(ctx, s.db))

	cfg := &config.Config{
		JWTConfig:  config.JWTConfig{Secret: "integration"},
		BcryptCost: bcrypt.MinCost,
	}

	images, err := storage.NewDiskStorage(s.T().TempDir(), "http://shop.test")
	s.Require().NoError(err)

	userRepo := repository.CreateNewMongoDBUserRepository(s.db)
	productRepo := repository.CreateNewMongoDBProductRepository(s.db)

	e := NewServer(cfg, Services{
		User:    service.CreateUserService(userRepo, *cfg),
		Product: service.CreateProductService(productRepo, kafka.NoopPublisher{}, nil, images),
		Cart:    service.CreateCartService(userRepo),
	}, nil)

	s.server = httptest.NewServer(e)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	ctx := context.Background()
	if s.server != nil {
		s.server.Close()
	}
	if s.db != nil {
		_ = s.db.Client().Disconnect(ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(ctx)
	}
}

func (s *IntegrationTestSuite) post(path string, body any, token string) *http.Response {
	reqBody, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, bytes.NewReader(reqBody))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthTokenHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *IntegrationTestSuite) signup(email string) string {
	resp := s.post("/signup", dto.SignupRequest{Name: "Ann", Email: email, Password: "pw123"}, "")
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var token dto.TokenResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&token))
	s.Require().True(token.Success)
	return token.Token
}

func (s *IntegrationTestSuite) getCart(token string) map[string]int64 {
	resp := s.post("/getcart", struct{}{}, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var cart map[string]int64
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&cart))
	return cart
}

func (s *IntegrationTestSuite) Test_SignupAndCartFlow() {
	token := s.signup("flow@example.com")

	cart := s.getCart(token)
	s.Len(cart, 300)
	for _, q := range cart {
		s.Zero(q)
	}

	for i := 0; i < 2; i++ {
		resp := s.post("/addtocart", map[string]int{"itemId": 5}, token)
		resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
	}
	resp := s.post("/removefromcart", map[string]int{"itemId": 5}, token)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// Removing from an empty slot is a no-op.
	resp = s.post("/removefromcart", map[string]int{"itemId": 9}, token)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	cart = s.getCart(token)
	s.Equal(int64(1), cart["5"])
	s.Equal(int64(0), cart["9"])
}

func (s *IntegrationTestSuite) Test_UserLogin() {
	s.signup("login@example.com")

	testCases := []struct {
		Name           string
		Request        dto.LoginRequest
		ExpectedStatus int
	}{
		{Name: "Valid request", Request: dto.LoginRequest{Email: "login@example.com", Password: "pw123"}, ExpectedStatus: http.StatusOK},
		{Name: "Wrong password", Request: dto.LoginRequest{Email: "login@example.com", Password: "nope"}, ExpectedStatus: http.StatusUnauthorized},
		{Name: "Unknown email", Request: dto.LoginRequest{Email: "ghost@example.com", Password: "pw123"}, ExpectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			resp := s.post("/login", tc.Request, "")
			defer resp.Body.Close()
			s.Equal(tc.ExpectedStatus, resp.StatusCode)
		})
	}
}

func (s *IntegrationTestSuite) Test_DuplicateSignup() {
	s.signup("dup@example.com")

	resp := s.post("/signup", dto.SignupRequest{Name: "Ann", Email: "dup@example.com", Password: "pw123"}, "")
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) Test_SignupLongPassword() {
	resp := s.post("/signup", dto.SignupRequest{Name: "Ann", Email: "long@example.com", Password: strings.Repeat("p", 80)}, "")
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) Test_RemoveUnknownProductIDs() {
	for _, id := range []int64{0, -1, 987654} {
		resp := s.post("/removeproduct", dto.RemoveProductRequest{ID: id}, "")
		resp.Body.Close()
		s.Equal(http.StatusNotFound, resp.StatusCode)
	}
}

func (s *IntegrationTestSuite) Test_ProductLifecycle() {
	add := func(name string) int64 {
		resp := s.post("/addproduct", dto.ProductRequest{Name: name, Image: "http://shop.test/images/x.png", Category: "women", NewPrice: 10, OldPrice: 20}, "")
		defer resp.Body.Close()
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var added dto.AddProductResponse
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&added))
		return added.ID
	}

	first := add("a")
	second := add("b")
	s.Greater(second, first)

	resp := s.post("/removeproduct", dto.RemoveProductRequest{ID: second}, "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	s.Greater(add("c"), second)

	resp = s.post("/removeproduct", dto.RemoveProductRequest{ID: second}, "")
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)

	listResp, err := http.Get(s.server.URL + "/popularinwomen")
	s.Require().NoError(err)
	defer listResp.Body.Close()

	var popular []dto.ProductResponse
	s.Require().NoError(json.NewDecoder(listResp.Body).Decode(&popular))
	s.Len(popular, 2)
	s.Equal(first, popular[0].ID)
}
