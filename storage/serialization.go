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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/docvec/core"
)

// IngestionRecordMUS serializes core.IngestionRecord in MUS format.
// Timestamps are stored as Unix microseconds in UTC.
var IngestionRecordMUS = ingestionRecordMUS{}

type ingestionRecordMUS struct{}

func (s ingestionRecordMUS) Marshal(r core.IngestionRecord, bs []byte) (n int) {
	n = ord.String.Marshal(string(r.Fingerprint), bs)
	n += ord.String.Marshal(r.Filename, bs[n:])
	n += ord.String.Marshal(string(r.MediaType), bs[n:])
	n += ord.String.Marshal(r.Collection, bs[n:])
	n += varint.Int.Marshal(r.Chunks, bs[n:])
	n += varint.Int64.Marshal(r.IngestedAt.UnixMicro(), bs[n:])
	return n
}

func (s ingestionRecordMUS) Unmarshal(bs []byte) (r core.IngestionRecord, n int, err error) {
	var (
		fp, mediaType string
		n1            int
		micros        int64
	)
	fp, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Fingerprint = core.Fingerprint(fp)

	r.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	mediaType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.MediaType = core.MediaType(mediaType)

	r.Collection, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	r.Chunks, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.IngestedAt = time.UnixMicro(micros).UTC()
	return
}

func (s ingestionRecordMUS) Size(r core.IngestionRecord) (size int) {
	size = ord.String.Size(string(r.Fingerprint))
	size += ord.String.Size(r.Filename)
	size += ord.String.Size(string(r.MediaType))
	size += ord.String.Size(r.Collection)
	size += varint.Int.Size(r.Chunks)
	size += varint.Int64.Size(r.IngestedAt.UnixMicro())
	return size
}

// MarshalIngestionRecord serializes an IngestionRecord to bytes.
func MarshalIngestionRecord(record *core.IngestionRecord) []byte {
	buf := make([]byte, IngestionRecordMUS.Size(*record))
	IngestionRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalIngestionRecord deserializes an IngestionRecord from bytes.
func UnmarshalIngestionRecord(data []byte) (*core.IngestionRecord, error) {
	record, _, err := IngestionRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
