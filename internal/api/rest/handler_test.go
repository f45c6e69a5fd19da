package rest_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/api/middleware"
	"github.com/feral-file/ff-rights-ledger/internal/api/rest"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/mocks"
	"github.com/feral-file/ff-rights-ledger/internal/purchase"
)

const (
	testAPIKey  = "test-api-key"
	testWallet  = "0x457ee5f723C7606c12a7264b52e285906F91eEA6"
	testContent = domain.ContentID("film-1")
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testHandlerMocks contains the mocks and the router under test
type testHandlerMocks struct {
	ctrl     *gomock.Controller
	executor *mocks.MockAPIExecutor
	router   *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandlerMocks {
	ctrl := gomock.NewController(t)

	tm := &testHandlerMocks{
		ctrl:     ctrl,
		executor: mocks.NewMockAPIExecutor(ctrl),
		router:   gin.New(),
	}
	rest.SetupRoutes(tm.router, rest.NewHandler(tm.executor), middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return tm
}

func tearDownTestHandler(mocks *testHandlerMocks) {
	mocks.ctrl.Finish()
}

func (tm *testHandlerMocks) do(method, path string, body any, apiKey string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+apiKey)
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *apierrors.APIError {
	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	w := mocks.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetToken(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	mocks.executor.EXPECT().GetToken(gomock.Any(), testContent).Return(&dto.TokenResponse{
		ContentID:      testContent,
		DerivedTokenID: "123",
	}, nil)

	w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/token", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "123", resp.DerivedTokenID)
}

func TestGetToken_NotFound(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	mocks.executor.EXPECT().GetToken(gomock.Any(), testContent).Return(nil, domain.ErrTokenNotFound)

	w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/token", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierrors.ErrCodeNotFound, decodeError(t, w).Code)
}

func TestTokenize_RequiresAuth(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	w := mocks.do(http.MethodPost, "/api/v1/contents/film-1/tokenize", dto.TokenizeRequest{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeUnauthorized, decodeError(t, w).Code)

	w = mocks.do(http.MethodPost, "/api/v1/contents/film-1/tokenize", dto.TokenizeRequest{}, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenize(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	req := dto.TokenizeRequest{
		Creator:       testWallet,
		Supply:        100,
		PricePerToken: "1000",
		Thresholds:    []dto.Threshold{{Quantity: 1, Label: "Personal"}},
	}
	tokenID := "42"
	mocks.executor.EXPECT().Tokenize(gomock.Any(), testContent, req).Return(&dto.TokenizationResponse{
		ContentID: testContent,
		State:     domain.TokenizationStateVerified,
		TokenID:   &tokenID,
		TxHash:    "0xabc",
	}, nil)

	w := mocks.do(http.MethodPost, "/api/v1/contents/film-1/tokenize", req, testAPIKey)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.TokenizationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.TokenizationStateVerified, resp.State)
	require.NotNil(t, resp.TokenID)
	assert.Equal(t, "42", *resp.TokenID)
}

func TestTokenize_CreatorSession(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	executor := mocks.NewMockAPIExecutor(ctrl)
	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(executor), middleware.AuthConfig{
		JWTPublicKey: string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})),
		APIKeys:      []string{testAPIKey},
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   testWallet,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	post := func(path string, body any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	own := dto.TokenizeRequest{Creator: testWallet, Supply: 10, PricePerToken: "1"}
	executor.EXPECT().Tokenize(gomock.Any(), testContent, own).Return(&dto.TokenizationResponse{
		ContentID: testContent,
		State:     domain.TokenizationStateVerified,
	}, nil)

	w := post("/api/v1/contents/film-1/tokenize", own)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = post("/api/v1/contents/film-1/tokenize", dto.TokenizeRequest{
		Creator:       "0x99fc8AD516FBCC9bA3123D56e63A35d05AA9EFB8",
		Supply:        10,
		PricePerToken: "1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apierrors.ErrCodeForbidden, decodeError(t, w).Code)

	w = post("/api/v1/contents/film-1/tokenization/recover", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTokenize_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"malformed json", "not-an-object"},
		{"missing creator", dto.TokenizeRequest{Supply: 1, PricePerToken: "1"}},
		{"zero supply", dto.TokenizeRequest{Creator: testWallet, PricePerToken: "1"}},
		{"bad price", dto.TokenizeRequest{Creator: testWallet, Supply: 1, PricePerToken: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestHandler(t)
			defer tearDownTestHandler(mocks)

			w := mocks.do(http.MethodPost, "/api/v1/contents/film-1/tokenize", tt.body, testAPIKey)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
		})
	}
}

func TestTokenize_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		class      string
	}{
		{"already tokenized", domain.ErrAlreadyTokenized, http.StatusConflict, "already_tokenized"},
		{"wallet rejected", fmt.Errorf("%w: user denied", domain.ErrWalletRejected), http.StatusForbidden, "wallet_rejected"},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient_funds"},
		{"confirmation timeout", domain.ErrConfirmationTimeout, http.StatusGatewayTimeout, "confirmation_timeout"},
		{"verification failed", domain.ErrVerificationFailed, http.StatusBadGateway, "verification_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestHandler(t)
			defer tearDownTestHandler(mocks)

			mocks.executor.EXPECT().Tokenize(gomock.Any(), testContent, gomock.Any()).Return(nil, tt.err)

			w := mocks.do(http.MethodPost, "/api/v1/contents/film-1/tokenize", dto.TokenizeRequest{
				Creator:       testWallet,
				Supply:        1,
				PricePerToken: "1",
			}, testAPIKey)
			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, tt.class, decodeError(t, w).Class)
		})
	}
}

func TestRecoverTokenization(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	mocks.executor.EXPECT().RecoverTokenization(gomock.Any(), testContent).Return(&dto.TokenizationResponse{
		ContentID: testContent,
		State:     domain.TokenizationStateVerified,
	}, nil)

	w := mocks.do(http.MethodPost, "/api/v1/contents/film-1/tokenization/recover", nil, testAPIKey)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetTokenization(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	mocks.executor.EXPECT().GetTokenization(gomock.Any(), testContent).Return(&dto.TokenizationStatusResponse{
		ContentID: testContent,
		State:     domain.TokenizationStateFailedUnverified,
		Failure:   &dto.TokenizationFailure{Class: "verification_failed"},
	}, nil)

	w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/tokenization", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TokenizationStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.TokenizationStateFailedUnverified, resp.State)
	require.NotNil(t, resp.Failure)
	assert.Equal(t, "verification_failed", resp.Failure.Class)
}

func TestPurchase(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	req := dto.PurchaseRequest{Wallet: testWallet, Quantity: 2, PricePerToken: "10"}
	mocks.executor.EXPECT().Purchase(gomock.Any(), testContent, req).Return(&dto.PurchaseResponse{
		ContentID: testContent,
		Wallet:    testWallet,
		State:     purchase.StatePaidButUnverified,
		Quantity:  2,
		Rights:    []string{domain.DEFAULT_RIGHTS_LABEL},
		Warning:   purchase.WarningPaidButUnverified,
	}, nil)

	w := mocks.do(http.MethodPost, "/api/v1/contents/film-1/purchases", req, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PurchaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, purchase.StatePaidButUnverified, resp.State)
	assert.Equal(t, purchase.WarningPaidButUnverified, resp.Warning)
	assert.Equal(t, []string{domain.DEFAULT_RIGHTS_LABEL}, resp.Rights)
}

func TestPurchase_InvalidBody(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	w := mocks.do(http.MethodPost, "/api/v1/contents/film-1/purchases",
		dto.PurchaseRequest{Wallet: testWallet, PricePerToken: "10"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPurchase(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	mocks.executor.EXPECT().GetPurchase(gomock.Any(), testContent, testWallet).Return(&dto.PurchaseRecordResponse{
		ContentID:            testContent,
		Wallet:               testWallet,
		Quantity:             3,
		ReconciliationStatus: domain.ReconciliationStatusConfirmed,
	}, nil)

	w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/purchases/"+testWallet, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":3`)
}

func TestGetPurchase_NotFound(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	mocks.executor.EXPECT().GetPurchase(gomock.Any(), testContent, testWallet).Return(nil, nil)

	w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/purchases/"+testWallet, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOwnership_Refresh(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		refresh bool
	}{
		{"default", "", false},
		{"refresh", "?refresh=true", true},
		{"explicit false", "?refresh=false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestHandler(t)
			defer tearDownTestHandler(mocks)

			mocks.executor.EXPECT().GetOwnership(gomock.Any(), testContent, testWallet, tt.refresh).
				Return(&dto.OwnershipResponse{ContentID: testContent, Wallet: testWallet, Owned: true, Quantity: 1}, nil)

			w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/ownership/"+testWallet+tt.query, nil, "")
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestGetOwnership_InvalidRefresh(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/ownership/"+testWallet+"?refresh=maybe", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRights(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	mocks.executor.EXPECT().GetRights(gomock.Any(), testContent, testWallet, false).Return(&dto.RightsResponse{
		Ownership: dto.OwnershipResponse{ContentID: testContent, Wallet: testWallet, Owned: true, Quantity: 10},
		Rights:    []string{"Personal", "Screening"},
	}, nil)

	w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/rights/"+testWallet, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RightsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Personal", "Screening"}, resp.Rights)
}

func TestGetRights_InternalErrorHidesDetails(t *testing.T) {
	mocks := setupTestHandler(t)
	defer tearDownTestHandler(mocks)

	mocks.executor.EXPECT().GetRights(gomock.Any(), testContent, testWallet, false).
		Return(nil, fmt.Errorf("db password is hunter2"))

	w := mocks.do(http.MethodGet, "/api/v1/contents/film-1/rights/"+testWallet, nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
}
