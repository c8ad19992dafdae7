// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

// Kind identifies one builder. The set is closed: adding a builder is a code
// change.
type Kind uint8

const (
	Titan Kind = iota
	Beaver
	Rsync

	numKinds
)

// Endpoint is where a builder accepts private transactions and which method
// it expects them on.
type Endpoint struct {
	URL    string
	Method string
}

var endpoints = [numKinds]Endpoint{
	Titan:  {URL: "https://rpc.titanbuilder.xyz", Method: "eth_sendPrivateTransaction"},
	Beaver: {URL: "https://mevshare-rpc.beaverbuild.org", Method: "eth_sendPrivateRawTransaction"},
	Rsync:  {URL: "https://rsync-builder.xyz", Method: "eth_sendPrivateRawTransaction"},
}

var kindNames = [numKinds]string{
	Titan:  "titan",
	Beaver: "beaver",
	Rsync:  "rsync",
}

// Kinds returns every known builder, always in the same order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Endpoint returns the fixed endpoint of k.
func (k Kind) Endpoint() Endpoint {
	if !k.Valid() {
		return Endpoint{}
	}
	return endpoints[k]
}

// Classifier returns how responses from k are judged.
func (k Kind) Classifier() Classifier {
	return DefaultClassifier
}

func (k Kind) Valid() bool {
	return k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}
