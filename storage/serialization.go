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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/aracbul/aracbul/core"
)

// ListingMUS serializes core.Listing in the MUS format.
// Field order is the wire format; append new fields at the end only.
var ListingMUS = listingMUS{}

// CheckpointMUS serializes core.Checkpoint in the MUS format.
var CheckpointMUS = checkpointMUS{}

type listingMUS struct{}

func (listingMUS) Marshal(l core.Listing, bs []byte) (n int) {
	n = ord.String.Marshal(l.Id, bs)
	n += ord.String.Marshal(l.Title, bs[n:])
	n += ord.String.Marshal(l.Brand, bs[n:])
	n += ord.String.Marshal(l.City, bs[n:])
	n += ord.String.Marshal(l.Fuel, bs[n:])
	n += ord.String.Marshal(l.Transmission, bs[n:])
	n += varint.Int.Marshal(l.Year, bs[n:])
	n += varint.Int.Marshal(l.Price, bs[n:])
	n += varint.Int.Marshal(l.Distance, bs[n:])
	n += ord.String.Marshal(l.URL, bs[n:])
	n += ord.String.Marshal(l.Image, bs[n:])
	n += varint.Int64.Marshal(l.ScrapedAt.UTC().UnixMicro(), bs[n:])
	return n
}

func (listingMUS) Unmarshal(bs []byte) (l core.Listing, n int, err error) {
	var n1 int
	if l.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if l.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.Brand, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.City, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.Fuel, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.Transmission, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.Year, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.Price, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.Distance, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.URL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if l.Image, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	l.ScrapedAt = time.UnixMicro(micros).UTC()
	return
}

func (listingMUS) Size(l core.Listing) (size int) {
	size = ord.String.Size(l.Id)
	size += ord.String.Size(l.Title)
	size += ord.String.Size(l.Brand)
	size += ord.String.Size(l.City)
	size += ord.String.Size(l.Fuel)
	size += ord.String.Size(l.Transmission)
	size += varint.Int.Size(l.Year)
	size += varint.Int.Size(l.Price)
	size += varint.Int.Size(l.Distance)
	size += ord.String.Size(l.URL)
	size += ord.String.Size(l.Image)
	size += varint.Int64.Size(l.ScrapedAt.UTC().UnixMicro())
	return size
}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(c core.Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(c.Source, bs)
	n += ord.String.Marshal(c.Digest, bs[n:])
	n += varint.Int.Marshal(c.Count, bs[n:])
	n += varint.Int64.Marshal(c.IngestedAt.UTC().UnixMicro(), bs[n:])
	return n
}

func (checkpointMUS) Unmarshal(bs []byte) (c core.Checkpoint, n int, err error) {
	var n1 int
	if c.Source, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if c.Digest, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Count, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	c.IngestedAt = time.UnixMicro(micros).UTC()
	return
}

func (checkpointMUS) Size(c core.Checkpoint) (size int) {
	size = ord.String.Size(c.Source)
	size += ord.String.Size(c.Digest)
	size += varint.Int.Size(c.Count)
	size += varint.Int64.Size(c.IngestedAt.UTC().UnixMicro())
	return size
}

// MarshalListing serializes a Listing to bytes.
func MarshalListing(listing *core.Listing) []byte {
	buf := make([]byte, ListingMUS.Size(*listing))
	ListingMUS.Marshal(*listing, buf)
	return buf
}

// UnmarshalListing deserializes a Listing from bytes.
func UnmarshalListing(data []byte) (*core.Listing, error) {
	listing, _, err := ListingMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, CheckpointMUS.Size(*checkpoint))
	CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}
