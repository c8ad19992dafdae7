// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DecodedTx is a transaction whose signature has been checked.
type DecodedTx interface {
	Hash() common.Hash
	From() common.Address
}

// Decoder turns raw bytes into a signed transaction.
type Decoder interface {
	Decode(raw []byte) (DecodedTx, error)
}

// DecodeError reports raw bytes that are not a valid signed transaction.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EthDecoder decodes EIP-2718 encoded Ethereum transactions and recovers
// their sender.
type EthDecoder struct{}

type recoveredTx struct {
	*types.Transaction
	from common.Address
}

func (t recoveredTx) From() common.Address { return t.from }

func (EthDecoder) Decode(raw []byte) (DecodedTx, error) {
	if len(raw) == 0 {
		return nil, &DecodeError{Message: "empty transaction data"}
	}
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, &DecodeError{Message: "failed to decode signed transaction", Err: err}
	}
	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, &DecodeError{Message: "invalid transaction signature", Err: err}
	}
	return recoveredTx{Transaction: tx, from: from}, nil
}
