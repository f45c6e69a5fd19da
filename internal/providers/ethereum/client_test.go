package ethereum

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/mocks"
)

const testContract = "0x1111111111111111111111111111111111111111"

var testOwner = common.HexToAddress("0x457ee5f723C7606c12a7264b52e285906F91eEA6")

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testClientMocks contains the mocks and the gateway under test
type testClientMocks struct {
	ctrl      *gomock.Controller
	ethClient *mocks.MockEthClient
	wallet    *mocks.MockWallet
	abi       abi.ABI
	gateway   chain.Gateway
}

func setupTestClient(t *testing.T, contract string) *testClientMocks {
	ctrl := gomock.NewController(t)

	parsed, err := abi.JSON(strings.NewReader(registryABIJSON))
	require.NoError(t, err)

	tm := &testClientMocks{
		ctrl:      ctrl,
		ethClient: mocks.NewMockEthClient(ctrl),
		wallet:    mocks.NewMockWallet(ctrl),
		abi:       parsed,
	}

	tm.gateway, err = NewClient(Config{
		ChainID:             domain.ChainEthereumSepolia,
		ContractAddress:     contract,
		ReceiptPollInterval: time.Millisecond,
	}, tm.ethClient, tm.wallet)
	require.NoError(t, err)

	return tm
}

func tearDownTestClient(mocks *testClientMocks) {
	mocks.ctrl.Finish()
}

// packOutputs encodes the return values of a registry method
func (tm *testClientMocks) packOutputs(t *testing.T, method string, values ...any) []byte {
	out, err := tm.abi.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return out
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{ChainID: "tezos:mainnet"}, nil, nil)
	assert.Error(t, err)

	_, err = NewClient(Config{ChainID: domain.ChainEthereumSepolia, ContractAddress: "0x123"}, nil, nil)
	assert.Error(t, err)
}

func TestBalanceOf(t *testing.T) {
	mocks := setupTestClient(t, testContract)
	defer tearDownTestClient(mocks)

	mocks.ethClient.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			require.NotNil(t, msg.To)
			assert.Equal(t, common.HexToAddress(testContract), *msg.To)
			assert.Equal(t, mocks.abi.Methods["balanceOf"].ID, msg.Data[:4])
			return mocks.packOutputs(t, "balanceOf", big.NewInt(3)), nil
		})

	balance, err := mocks.gateway.BalanceOf(context.Background(), testOwner, big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, int64(3), balance.Int64())
}

func TestBalanceOf_ContractNotConfigured(t *testing.T) {
	mocks := setupTestClient(t, "")
	defer tearDownTestClient(mocks)

	_, err := mocks.gateway.BalanceOf(context.Background(), testOwner, big.NewInt(7))
	assert.ErrorIs(t, err, domain.ErrContractNotConfigured)
}

func TestBalanceOf_RegistryUnavailable(t *testing.T) {
	mocks := setupTestClient(t, testContract)
	defer tearDownTestClient(mocks)

	mocks.ethClient.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, errors.New("connection refused"))

	_, err := mocks.gateway.BalanceOf(context.Background(), testOwner, big.NewInt(7))
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestFilm(t *testing.T) {
	mocks := setupTestClient(t, testContract)
	defer tearDownTestClient(mocks)

	creator := common.HexToAddress("0x2222222222222222222222222222222222222222")
	mocks.ethClient.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(mocks.packOutputs(t, "films", "film-1", "A Film", big.NewInt(100), big.NewInt(5), creator), nil)

	film, err := mocks.gateway.Film(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	require.NotNil(t, film)
	assert.Equal(t, "film-1", film.FilmID)
	assert.Equal(t, "A Film", film.Title)
	assert.Equal(t, int64(100), film.Supply.Int64())
	assert.Equal(t, creator, film.Creator)
	assert.Equal(t, int64(1), film.TokenID.Int64())
}

func TestFilm_EmptySlot(t *testing.T) {
	mocks := setupTestClient(t, testContract)
	defer tearDownTestClient(mocks)

	mocks.ethClient.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(mocks.packOutputs(t, "films", "", "", big.NewInt(0), big.NewInt(0), common.Address{}), nil)

	film, err := mocks.gateway.Film(context.Background(), big.NewInt(9))
	require.NoError(t, err)
	assert.Nil(t, film)
}

func TestRightsThresholds_Sorted(t *testing.T) {
	mocks := setupTestClient(t, testContract)
	defer tearDownTestClient(mocks)

	mocks.ethClient.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(mocks.packOutputs(t, "getRightsThresholds", []thresholdTuple{
			{Quantity: big.NewInt(10), Label: "Screening"},
			{Quantity: big.NewInt(1), Label: "Personal"},
		}), nil)

	thresholds, err := mocks.gateway.RightsThresholds(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, []domain.RightsThreshold{
		{Quantity: 1, Label: "Personal"},
		{Quantity: 10, Label: "Screening"},
	}, thresholds)
}

func TestAccount(t *testing.T) {
	sepolia, _ := domain.ChainEthereumSepolia.ChainID()
	mainnet, _ := domain.ChainEthereumMainnet.ChainID()

	tests := []struct {
		name        string
		setup       func(m *testClientMocks)
		expectedErr error
	}{
		{
			name: "connected on the right network",
			setup: func(m *testClientMocks) {
				m.wallet.EXPECT().Accounts(gomock.Any()).Return([]common.Address{testOwner}, nil)
				m.wallet.EXPECT().ChainID(gomock.Any()).Return(sepolia, nil)
			},
		},
		{
			name: "switches network",
			setup: func(m *testClientMocks) {
				m.wallet.EXPECT().Accounts(gomock.Any()).Return([]common.Address{testOwner}, nil)
				m.wallet.EXPECT().ChainID(gomock.Any()).Return(mainnet, nil)
				m.wallet.EXPECT().SwitchChain(gomock.Any(), sepolia).Return(nil)
			},
		},
		{
			name: "switch refused",
			setup: func(m *testClientMocks) {
				m.wallet.EXPECT().Accounts(gomock.Any()).Return([]common.Address{testOwner}, nil)
				m.wallet.EXPECT().ChainID(gomock.Any()).Return(mainnet, nil)
				m.wallet.EXPECT().SwitchChain(gomock.Any(), sepolia).Return(errors.New("user rejected the request"))
			},
			expectedErr: domain.ErrWrongNetwork,
		},
		{
			name: "no accounts",
			setup: func(m *testClientMocks) {
				m.wallet.EXPECT().Accounts(gomock.Any()).Return(nil, nil)
			},
			expectedErr: domain.ErrWalletUnavailable,
		},
		{
			name: "wallet error",
			setup: func(m *testClientMocks) {
				m.wallet.EXPECT().Accounts(gomock.Any()).Return(nil, errors.New("socket closed"))
			},
			expectedErr: domain.ErrWalletUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestClient(t, testContract)
			defer tearDownTestClient(mocks)

			tt.setup(mocks)

			account, err := mocks.gateway.Account(context.Background())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testOwner, account)
		})
	}
}

func TestAccount_NoWallet(t *testing.T) {
	gateway, err := NewClient(Config{ChainID: domain.ChainEthereumSepolia, ContractAddress: testContract}, nil, nil)
	require.NoError(t, err)

	_, err = gateway.Account(context.Background())
	assert.ErrorIs(t, err, domain.ErrWalletUnavailable)
}

// setupKeyedClient builds a gateway signing with a real key so transactions can be inspected
func setupKeyedClient(t *testing.T) (*gomock.Controller, *mocks.MockEthClient, chain.Gateway, common.Address) {
	ctrl := gomock.NewController(t)
	ethClient := mocks.NewMockEthClient(ctrl)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	wallet, err := NewKeyedWallet(hex.EncodeToString(crypto.FromECDSA(key)), domain.ChainEthereumSepolia)
	require.NoError(t, err)

	gateway, err := NewClient(Config{
		ChainID:             domain.ChainEthereumSepolia,
		ContractAddress:     testContract,
		ReceiptPollInterval: time.Millisecond,
	}, ethClient, wallet)
	require.NoError(t, err)

	return ctrl, ethClient, gateway, crypto.PubkeyToAddress(key.PublicKey)
}

func TestPurchaseTokens(t *testing.T) {
	ctrl, ethClient, gateway, from := setupKeyedClient(t)
	defer ctrl.Finish()

	value := big.NewInt(3000)
	var sent *types.Transaction

	ethClient.EXPECT().PendingNonceAt(gomock.Any(), from).Return(uint64(4), nil)
	ethClient.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(10), nil)
	ethClient.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
			assert.Equal(t, from, msg.From)
			assert.Equal(t, value, msg.Value)
			return 100000, nil
		})
	ethClient.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})

	hash, err := gateway.PurchaseTokens(context.Background(), big.NewInt(7), 3, value)
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, sent.Hash(), hash)
	assert.Equal(t, value, sent.Value())
	assert.Equal(t, uint64(4), sent.Nonce())
	assert.Equal(t, uint64(120000), sent.Gas())
	assert.Equal(t, common.HexToAddress(testContract), *sent.To())
}

func TestPurchaseTokens_SendErrors(t *testing.T) {
	tests := []struct {
		name         string
		sendErr      error
		expectedErr  error
		expectedHash bool
	}{
		{"ambiguous broadcast", errors.New("connection reset by peer"), domain.ErrPartialSuccessPaymentOnly, true},
		{"insufficient funds", errors.New("insufficient funds for gas * price + value"), domain.ErrInsufficientFunds, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, ethClient, gateway, from := setupKeyedClient(t)
			defer ctrl.Finish()

			ethClient.EXPECT().PendingNonceAt(gomock.Any(), from).Return(uint64(0), nil)
			ethClient.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
			ethClient.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(21000), nil)
			ethClient.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(tt.sendErr)

			hash, err := gateway.PurchaseTokens(context.Background(), big.NewInt(7), 1, big.NewInt(10))
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expectedHash, hash != (common.Hash{}))
		})
	}
}

func TestCreateFilm_EstimateRejected(t *testing.T) {
	ctrl, ethClient, gateway, from := setupKeyedClient(t)
	defer ctrl.Finish()

	ethClient.EXPECT().PendingNonceAt(gomock.Any(), from).Return(uint64(0), nil)
	ethClient.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
	ethClient.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
			assert.Equal(t, int64(0), msg.Value.Int64())
			return 0, errors.New("insufficient funds for gas")
		})

	_, err := gateway.CreateFilm(context.Background(), chain.CreateFilmParams{
		FilmID:        "film-1",
		Title:         "A Film",
		Supply:        100,
		PricePerToken: big.NewInt(5),
		Thresholds:    []domain.RightsThreshold{{Quantity: 1, Label: "Personal"}},
		RoyaltySplits: []domain.RoyaltySplit{{Recipient: from.Hex(), BasisPoints: 10000}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestWaitForReceipt(t *testing.T) {
	mocks := setupTestClient(t, testContract)
	defer tearDownTestClient(mocks)

	txHash := common.HexToHash("0xf11a")
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: txHash}

	gomock.InOrder(
		mocks.ethClient.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, ethereum.NotFound),
		mocks.ethClient.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(receipt, nil),
	)

	got, err := mocks.gateway.WaitForReceipt(context.Background(), txHash, time.Second)
	require.NoError(t, err)
	assert.Equal(t, receipt, got)
}

func TestWaitForReceipt_Timeout(t *testing.T) {
	mocks := setupTestClient(t, testContract)
	defer tearDownTestClient(mocks)

	txHash := common.HexToHash("0xf11a")
	mocks.ethClient.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, ethereum.NotFound).AnyTimes()

	_, err := mocks.gateway.WaitForReceipt(context.Background(), txHash, 20*time.Millisecond)
	assert.ErrorIs(t, err, domain.ErrConfirmationTimeout)
}

func TestVerifyNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ethClient := mocks.NewMockEthClient(ctrl)

	ethClient.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(11155111), nil)
	assert.NoError(t, VerifyNetwork(context.Background(), ethClient, domain.ChainEthereumSepolia))

	ethClient.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(1), nil)
	assert.ErrorIs(t, VerifyNetwork(context.Background(), ethClient, domain.ChainEthereumSepolia), domain.ErrWrongNetwork)

	ethClient.EXPECT().ChainID(gomock.Any()).Return(nil, errors.New("dial tcp: refused"))
	assert.ErrorIs(t, VerifyNetwork(context.Background(), ethClient, domain.ChainEthereumSepolia), domain.ErrRegistryUnavailable)
}
