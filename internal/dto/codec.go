package dto

import (
	"encoding/json"
	"fmt"

	"knkadmin/internal/core/record"
	"knkadmin/internal/domain/world"
)

// Codec converts one entity type between wire JSON and view-shape records.
type Codec struct {
	Tag          string
	DecodeList   func(data []byte) ([]record.Record, error)
	DecodeOne    func(data []byte) (record.Record, error)
	EncodeCreate func(values record.Record) ([]byte, error)
}

// Codecs maps type tags to codecs.
type Codecs map[string]Codec

// Get returns the codec for tag.
func (c Codecs) Get(tag string) (Codec, bool) {
	codec, ok := c[tag]
	return codec, ok
}

func newCodec[W, V, C any](tag string, fromWire func(*W) *V, toCreate func(*V) C) Codec {
	toRecord := func(w *W) (record.Record, error) {
		v := fromWire(w)
		if v == nil {
			return record.Record{}, fmt.Errorf("%s: empty payload", tag)
		}
		return record.FromStruct(v)
	}

	return Codec{
		Tag: tag,
		DecodeList: func(data []byte) ([]record.Record, error) {
			var wires []W
			if err := json.Unmarshal(data, &wires); err != nil {
				return nil, fmt.Errorf("decode %s list: %w", tag, err)
			}
			out := make([]record.Record, 0, len(wires))
			for i := range wires {
				r, err := toRecord(&wires[i])
				if err != nil {
					return nil, err
				}
				out = append(out, r)
			}
			return out, nil
		},
		DecodeOne: func(data []byte) (record.Record, error) {
			var w W
			if err := json.Unmarshal(data, &w); err != nil {
				return record.Record{}, fmt.Errorf("decode %s: %w", tag, err)
			}
			return toRecord(&w)
		},
		EncodeCreate: func(values record.Record) ([]byte, error) {
			raw, err := values.MarshalJSON()
			if err != nil {
				return nil, err
			}
			var v V
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("encode %s: %w", tag, err)
			}
			return json.Marshal(toCreate(&v))
		},
	}
}

// NewCodecs returns the codecs of every entity type with a typed wire contract.
func NewCodecs() Codecs {
	list := []Codec{
		newCodec(world.TypeLocation, LocationFromWire, LocationToCreate),
		newCodec(world.TypeTown, TownFromWire, TownToCreate),
		newCodec(world.TypeDistrict, DistrictFromWire, DistrictToCreate),
		newCodec(world.TypeStreet, StreetFromWire, StreetToCreate),
		newCodec(world.TypeStructure, StructureFromWire, StructureToCreate),
		newCodec(world.TypeStorage, StorageFromWire, StorageToCreate),
		newCodec(world.TypeItem, ItemFromWire, ItemToCreate),
	}
	out := make(Codecs, len(list))
	for _, c := range list {
		out[c.Tag] = c
	}
	return out
}
