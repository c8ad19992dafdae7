// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	rpc "github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
)

const (
	// Namespace is the JSON-RPC namespace of the public method
	Namespace = "eth"

	// RPCPath is where Mount registers the handler
	RPCPath = "/"

	// DefaultMaxRequestBytes caps inbound request bodies. Hex encoding
	// doubles a transaction, so this admits blob transactions in network form.
	DefaultMaxRequestBytes int64 = 15 << 20
)

// Router is the host's HTTP router. *http.ServeMux satisfies it.
type Router interface {
	Handle(pattern string, handler http.Handler)
}

// Mount registers eth_sendPrivateRawTransaction on r.
func (s *Service) Mount(r Router) error {
	h, err := s.Handler()
	if err != nil {
		return err
	}
	r.Handle(RPCPath, h)
	s.log.Info("private transaction method added")
	return nil
}

// Handler returns the JSON-RPC handler serving the public method.
func (s *Service) Handler() (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(newCodec(), "application/json")
	if err := server.RegisterService(&ethAPI{svc: s}, Namespace); err != nil {
		return nil, err
	}
	var h http.Handler = server
	h = limitBody(h, s.maxRequestBytes)
	if s.limiter != nil {
		h = s.limiter.middleware(h)
	}
	return h, nil
}

type ethAPI struct {
	svc *Service
}

// SendPrivateRawTransaction implements eth_sendPrivateRawTransaction.
func (a *ethAPI) SendPrivateRawTransaction(r *http.Request, args *hexutil.Bytes, reply *common.Hash) error {
	hash, err := a.svc.SendPrivateRawTransaction(r.Context(), *args)
	if err != nil {
		return toRPCError(err)
	}
	*reply = hash
	return nil
}

func toRPCError(err error) *json2.Error {
	var boundary *Error
	if errors.As(err, &boundary) {
		return &json2.Error{Code: json2.ErrorCode(boundary.Code), Message: boundary.Message}
	}
	var rpcErr *json2.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &json2.Error{Code: CodeInvalidTransaction, Message: err.Error()}
}

func limitBody(next http.Handler, n int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		next.ServeHTTP(w, r)
	})
}

// codec maps eth style method names ("eth_sendPrivateRawTransaction") onto
// gorilla service methods ("eth.SendPrivateRawTransaction").
type codec struct {
	*json2.Codec
}

func newCodec() rpc.Codec {
	return codec{json2.NewCodec()}
}

func (c codec) NewRequest(r *http.Request) rpc.CodecRequest {
	return &request{c.Codec.NewRequest(r)}
}

type request struct {
	rpc.CodecRequest
}

func (r *request) Method() (string, error) {
	method, err := r.CodecRequest.Method()
	if err != nil {
		return "", err
	}
	return serviceMethod(method), nil
}

func serviceMethod(method string) string {
	sep := strings.IndexAny(method, "_.")
	if sep <= 0 || sep == len(method)-1 {
		return method
	}
	service, name := method[:sep], method[sep+1:]
	first, size := utf8.DecodeRuneInString(name)
	return service + "." + string(unicode.ToUpper(first)) + name[size:]
}
