// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"bytes"
	"encoding/json"
)

// Classifier decides whether a builder response reports a failure.
type Classifier interface {
	Failed(resp *Response) bool
}

// ClassifierFunc is a function adapter for Classifier
type ClassifierFunc func(resp *Response) bool

func (f ClassifierFunc) Failed(resp *Response) bool {
	return f(resp)
}

// TopLevelError flags any envelope carrying an "error" member, whatever
// else the body contains. An explicit null still counts.
var TopLevelError Classifier = ClassifierFunc(func(resp *Response) bool {
	_, ok := resp.Envelope["error"]
	return ok
})

// ResultError flags builders that answer with a successful envelope whose
// result object carries its own "error" member.
var ResultError Classifier = ClassifierFunc(func(resp *Response) bool {
	raw := bytes.TrimSpace(resp.Envelope["result"])
	if len(raw) == 0 || raw[0] != '{' {
		return false
	}
	var result map[string]json.RawMessage
	if err := json.Unmarshal(raw, &result); err != nil {
		return false
	}
	_, ok := result["error"]
	return ok
})

// AnyOf reports failure if any of cs does.
func AnyOf(cs ...Classifier) Classifier {
	return ClassifierFunc(func(resp *Response) bool {
		for _, c := range cs {
			if c.Failed(resp) {
				return true
			}
		}
		return false
	})
}

// DefaultClassifier is used by every builder kind.
var DefaultClassifier = AnyOf(TopLevelError, ResultError)
