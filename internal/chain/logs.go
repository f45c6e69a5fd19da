package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// TransferSingleEventSignature is the topic of the ERC-1155 TransferSingle event
var TransferSingleEventSignature = crypto.Keccak256Hash([]byte("TransferSingle(address,address,address,uint256,uint256)"))

// TransferSingle is a decoded ERC-1155 TransferSingle log
type TransferSingle struct {
	Operator common.Address
	From     common.Address
	To       common.Address
	TokenID  *big.Int
	Value    *big.Int
}

// ParseTransferSingle decodes a TransferSingle log, ok is false for any other log
func ParseTransferSingle(vLog types.Log) (*TransferSingle, bool) {
	// TransferSingle(address indexed operator, address indexed from, address indexed to, uint256 id, uint256 value)
	if len(vLog.Topics) != 4 || vLog.Topics[0] != TransferSingleEventSignature {
		return nil, false
	}
	if len(vLog.Data) < 64 {
		return nil, false
	}

	return &TransferSingle{
		Operator: common.BytesToAddress(vLog.Topics[1].Bytes()),
		From:     common.BytesToAddress(vLog.Topics[2].Bytes()),
		To:       common.BytesToAddress(vLog.Topics[3].Bytes()),
		TokenID:  new(big.Int).SetBytes(vLog.Data[0:32]),
		Value:    new(big.Int).SetBytes(vLog.Data[32:64]),
	}, true
}

// TransferredTo sums the TransferSingle amounts of tokenID emitted by contract to the given address
func TransferredTo(receipt *types.Receipt, contract common.Address, to common.Address, tokenID *big.Int) *big.Int {
	total := big.NewInt(0)
	if receipt == nil {
		return total
	}

	for _, vLog := range receipt.Logs {
		if vLog == nil || vLog.Address != contract {
			continue
		}
		transfer, ok := ParseTransferSingle(*vLog)
		if !ok || transfer.To != to || transfer.TokenID.Cmp(tokenID) != 0 {
			continue
		}
		total.Add(total, transfer.Value)
	}

	return total
}

// MintedTokenID returns the token id of the first mint (transfer from the zero address)
// emitted by contract to the given address
func MintedTokenID(receipt *types.Receipt, contract common.Address, to common.Address) (*big.Int, bool) {
	if receipt == nil {
		return nil, false
	}

	for _, vLog := range receipt.Logs {
		if vLog == nil || vLog.Address != contract {
			continue
		}
		transfer, ok := ParseTransferSingle(*vLog)
		if ok && transfer.From == (common.Address{}) && transfer.To == to {
			return transfer.TokenID, true
		}
	}

	return nil, false
}

// Succeeded reports whether the receipt is for a mined, non-reverted transaction
func Succeeded(receipt *types.Receipt) bool {
	return receipt != nil && receipt.Status == types.ReceiptStatusSuccessful
}

// EncodeTransferSingle builds the log a contract emits for an ERC-1155 single transfer
func EncodeTransferSingle(contract common.Address, transfer TransferSingle) *types.Log {
	data := make([]byte, 0, 64)
	data = append(data, common.LeftPadBytes(transfer.TokenID.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(transfer.Value.Bytes(), 32)...)

	return &types.Log{
		Address: contract,
		Topics: []common.Hash{
			TransferSingleEventSignature,
			common.BytesToHash(transfer.Operator.Bytes()),
			common.BytesToHash(transfer.From.Bytes()),
			common.BytesToHash(transfer.To.Bytes()),
		},
		Data: data,
	}
}
