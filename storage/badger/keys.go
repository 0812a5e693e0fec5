// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"encoding/binary"

	"github.com/poiesic/subnav/core"
)

const (
	subsidyPrefix          = "subsidy:"
	subsidySourceURLPrefix = "subsrc:"
	runPrefix              = "run:"
)

// makeSubsidyKey generates a key for a subsidy by ID.
func makeSubsidyKey(id string) []byte {
	return []byte(subsidyPrefix + id)
}

// makeSourceURLKey generates the secondary index key for a source URL.
// Format: prefix + 8 byte BLAKE2b hash of the URL.
func makeSourceURLKey(url string) []byte {
	buf := make([]byte, len(subsidySourceURLPrefix)+8)
	offset := copy(buf, subsidySourceURLPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.KeyFromContent(url)))
	return buf
}

// makeRunKey generates a key for a run by ID.
func makeRunKey(id string) []byte {
	return []byte(runPrefix + id)
}
