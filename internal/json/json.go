// SPDX-License-Identifier: Apache-2.0

package json

import (
	"github.com/bytedance/sonic"
)

// api sorts map keys so re-serialised documents are stable between runs.
var api = sonic.ConfigStd

func Unmarshal(b []byte, v any) error {
	return api.Unmarshal(b, v)
}

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}
