package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knkadmin/internal/core/record"
	"knkadmin/internal/domain/world"
)

func created() *time.Time {
	t := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return &t
}

func dominionFixture(id int64, name string) DominionWire {
	return DominionWire{
		Id:          id,
		Name:        name,
		Description: name + " description",
		AllowEntry:  true,
		WgRegionId:  "central",
		Created:     TimestampOf(created()),
		Location:    &LocationWire{Id: id, X: 100, Y: 64, Z: 100, WorldName: "world"},
	}
}

func TestRoundTrips(t *testing.T) {
	town := &TownWire{DominionWire: dominionFixture(1, "Riverside"), RequiredTitle: 2,
		Districts: []RefWire{{Id: 2, Name: "North District"}}}
	street := &StreetWire{Id: 1, Name: "Main Street"}
	district := &DistrictWire{DominionWire: dominionFixture(2, "North District"), Town: town,
		Streets: []StreetWire{*street}}
	storageOwner := int64(4)
	storage := &StorageWire{Id: 7, Name: "Storage", CapacityMax: 999999, ItemAmountMax: 999, StructureId: &storageOwner}
	structure := &StructureWire{
		DominionWire: dominionFixture(4, "Town Hall"),
		District:     district,
		Street: &StructureStreetWire{Id: 1, Name: "Main Street",
			Districts: []RefWire{{Id: 2, Name: "North District"}, {Id: 3, Name: "South District"}}},
		StreetNumber: 1,
		Storages:     []StorageWire{*storage},
	}
	item := &ItemWire{Id: 1, Name: "oak-log", DisplayName: "Oak Log", BasePrice: 2.5, CategoryId: 3, ItemtypeId: 17}

	t.Run("location", func(t *testing.T) {
		w := &LocationWire{Id: 3, X: 1, Y: 2, Z: 3, Yaw: 90, Pitch: 10, WorldName: "nether"}
		assert.Equal(t, w, LocationToWire(LocationFromWire(w)))
	})
	t.Run("town", func(t *testing.T) {
		assert.Equal(t, town, TownToWire(TownFromWire(town)))
	})
	t.Run("street", func(t *testing.T) {
		s := &StreetWire{Id: 2, Name: "High Street", Districts: []DistrictWire{*district}}
		assert.Equal(t, s, StreetToWire(StreetFromWire(s)))
	})
	t.Run("district", func(t *testing.T) {
		assert.Equal(t, district, DistrictToWire(DistrictFromWire(district)))
	})
	t.Run("structure", func(t *testing.T) {
		assert.Equal(t, structure, StructureToWire(StructureFromWire(structure)))
	})
	t.Run("storage", func(t *testing.T) {
		assert.Equal(t, storage, StorageToWire(StorageFromWire(storage)))
	})
	t.Run("item", func(t *testing.T) {
		assert.Equal(t, item, ItemToWire(ItemFromWire(item)))
	})
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, StructureFromWire(nil))
		assert.Nil(t, LocationToWire(nil))
	})
}

func TestStructureStreetIsAsymmetric(t *testing.T) {
	w := &StructureStreetWire{Id: 1, Name: "Main Street",
		Districts: []RefWire{{Id: 3, Name: "South"}, {Id: 2, Name: "North"}}}

	back := StructureStreetToWire(StructureStreetFromWire(w))

	assert.ElementsMatch(t, w.Districts, back.Districts)
	assert.NotEqual(t, w.Districts, back.Districts, "order is by id after the map round trip")
	assert.Equal(t, int64(2), back.Districts[0].Id)
}

func TestStructureStreetAcceptsBothShapes(t *testing.T) {
	var fromMap, fromList StructureStreetView
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Main","districts":{"2":"North"}}`), &fromMap))
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Main","districts":[{"id":2,"name":"North","streets":[]}]}`), &fromList))

	assert.Equal(t, fromMap, fromList)
	assert.Equal(t, "North", fromList.Districts["2"])
}

func TestCreateEmbedsOnlyNewReferences(t *testing.T) {
	values := record.Of(
		"id", int64(-1),
		"name", "Guild Hall",
		"description", "",
		"allowEntry", true,
		"wgRegionId", "north",
		"location", record.Of("id", int64(-1), "x", 10.0, "y", 64.0, "z", 12.0, "worldName", "world"),
		"district", record.Of("id", int64(2), "name", "North District"),
		"street", record.Of("id", int64(-1), "name", "New Street", "districts", []any{}),
		"streetNumber", int64(7),
	)

	raw, err := NewCodecs()[world.TypeStructure].EncodeCreate(values)
	require.NoError(t, err)

	var out StructureCreate
	require.NoError(t, json.Unmarshal(raw, &out))

	require.NotNil(t, out.LocationCreateDTO)
	assert.Equal(t, "Location", out.LocationCreateDTO.Name)
	assert.Equal(t, int64(-1), *out.LocationId)

	require.NotNil(t, out.DistrictId)
	assert.Equal(t, int64(2), *out.DistrictId)
	assert.Nil(t, out.District)

	require.NotNil(t, out.Street)
	assert.Equal(t, "New Street", out.Street.Name)
	assert.Equal(t, int64(7), out.StreetNumber)
}

func TestDistrictCreateNestedTown(t *testing.T) {
	v := &DistrictView{
		DominionView: DominionView{ID: -1, Name: "East"},
		Town:         &TownView{DominionView: DominionView{ID: -1, Name: "Newtown"}, RequiredTitle: 3},
	}
	c := DistrictToCreate(v)
	require.NotNil(t, c.Town)
	assert.Equal(t, int64(3), c.Town.RequiredTitle)

	v.Town.ID = 5
	c = DistrictToCreate(v)
	assert.Nil(t, c.Town)
	assert.Equal(t, int64(5), *c.TownId)
}

func TestCodecDecodeKeepsViewOrder(t *testing.T) {
	codec := NewCodecs()[world.TypeStructure]
	raw, err := json.Marshal([]StructureWire{{DominionWire: dominionFixture(4, "Town Hall"), StreetNumber: 1}})
	require.NoError(t, err)

	rows, err := codec.DecodeList(raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{
		"id", "name", "description", "allowEntry", "wgRegionId", "created", "location",
		"district", "street", "streetNumber", "storages",
	}, rows[0].Keys())
	assert.Equal(t, "Town Hall", rows[0].Value("name"))
	assert.IsType(t, time.Time{}, rows[0].Value("created"))
	assert.Nil(t, rows[0].Value("district"))

	_, err = codec.DecodeOne([]byte(`[`))
	assert.Error(t, err)
}

func TestCodecToleratesWireDates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{"rfc3339", `"2024-03-15T10:00:00Z"`, created()},
		{"no offset", `"2024-03-15T10:00:00"`, created()},
		{"fractional seconds", `"2024-03-15T10:00:00.0000000"`, created()},
		{"null", `null`, nil},
		{"garbage", `"yesterday"`, nil},
		{"number", `17`, nil},
	}
	codec := NewCodecs()[world.TypeTown]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := codec.DecodeList([]byte(`[{"Id":1,"Name":"Alpha","Created":` + tt.raw + `}]`))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "Alpha", rows[0].Value("name"))
			if tt.want == nil {
				assert.Nil(t, rows[0].Value("created"))
				return
			}
			assert.True(t, tt.want.Equal(rows[0].Value("created").(time.Time)))
		})
	}
}

func TestItemCategoryIsSelectValue(t *testing.T) {
	codec := NewCodecs()[world.TypeItem]
	row, err := codec.DecodeOne([]byte(`{"Id":1,"Name":"oak-log","CategoryId":3,"BasePrice":2}`))
	require.NoError(t, err)
	assert.Equal(t, "3", row.Value("categoryId"))

	raw, err := codec.EncodeCreate(row)
	require.NoError(t, err)
	var out ItemCreate
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, int64(3), out.CategoryId)
}
