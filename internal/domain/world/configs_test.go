package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knkadmin/internal/metadata"
)

func fieldNames(cfg *metadata.EntityConfig) []string {
	var names []string
	for _, f := range cfg.FieldList() {
		names = append(names, f.Name)
	}
	return names
}

func TestRegistryIsComplete(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	for _, tag := range Tags {
		cfg, ok := reg.Get(tag)
		require.True(t, ok, tag)
		assert.False(t, cfg.IsPlaceholder(), tag)
		assert.NotZero(t, cfg.Fields.Len(), tag)
	}
}

func TestStreetDistrictCycleResolves(t *testing.T) {
	reg := MustRegistry()

	street, _ := reg.Get(TypeStreet)
	district, _ := reg.Get(TypeDistrict)

	districts, ok := street.Field("districts")
	require.True(t, ok)
	streets, ok := district.Field("streets")
	require.True(t, ok)

	assert.Same(t, district, districts.ReferenceConfig())
	assert.Same(t, street, streets.ReferenceConfig())

	// Structure -> District -> Town -> Districts -> Streets -> Districts
	structure, _ := reg.Get(TypeStructure)
	f, _ := structure.Field("district")
	d := f.ReferenceConfig()
	townField, _ := d.Field("town")
	town := townField.ReferenceConfig()
	require.NotNil(t, town)
	assert.Equal(t, "Town", town.Label)
	back, _ := town.Field("districts")
	assert.Same(t, district, back.ReferenceConfig())
}

func TestExtensionKeepsBaseOrder(t *testing.T) {
	reg := MustRegistry()
	structure, _ := reg.Get(TypeStructure)
	town, _ := reg.Get(TypeTown)

	assert.Equal(t, []string{
		"id", "name", "description", "allowEntry", "wgRegionId", "created", "location",
		"district", "street", "streetNumber", "storages",
	}, fieldNames(structure))

	name, _ := town.Field("name")
	assert.Equal(t, "Town name must be at least 3 characters", name.Check("ab"))

	assert.NotNil(t, structure.Formatter("wgRegionId"), "formatters are inherited")
	assert.NotNil(t, structure.Formatter("streetNumber"))
	assert.Nil(t, town.Formatter("streetNumber"))
}

func TestFieldRules(t *testing.T) {
	reg := MustRegistry()
	structure, _ := reg.Get(TypeStructure)
	item, _ := reg.Get(TypeItem)
	town, _ := reg.Get(TypeTown)

	number, _ := structure.Field("streetNumber")
	assert.Equal(t, []string{"street"}, number.DependsOn)
	assert.Equal(t, "Street number must be positive", number.Check(int64(0)))
	assert.Equal(t, "#12", structure.Formatter("streetNumber")(int64(12)).Text)

	name, _ := item.Field("name")
	assert.Equal(t, "", name.Check("oak-log"))
	assert.NotEmpty(t, name.Check("Oak Log"))

	title, _ := town.Field("requiredTitle")
	assert.Equal(t, "Title must be larger than 0", title.Check(int64(0)))
	assert.Equal(t, int64(1), title.DefaultValue)
}

func TestPrice(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{int64(5), "$5.00"},
		{2.5, "$2.50"},
		{0.105, "$0.11"},
		{"3.456", "$3.46"},
		{nil, "-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(tt.in).Text)
	}
}
