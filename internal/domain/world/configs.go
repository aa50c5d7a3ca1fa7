// Package world declares the game-world entity types managed by the dashboard.
package world

import (
	"fmt"

	"knkadmin/internal/core/record"
	"knkadmin/internal/core/types"
	"knkadmin/internal/metadata"
)

// Type tags.
const (
	TypeLocation  = "location"
	TypeDominion  = "dominion"
	TypeTown      = "town"
	TypeDistrict  = "district"
	TypeStreet    = "street"
	TypeStructure = "structure"
	TypeStorage   = "storage"
	TypeItem      = "item"
)

// Tags lists every type tag in declaration order.
var Tags = []string{
	TypeLocation, TypeDominion, TypeTown, TypeDistrict,
	TypeStreet, TypeStructure, TypeStorage, TypeItem,
}

var commonID = metadata.FieldDescriptor{
	Name: "id", Label: "Id", Kind: metadata.KindNumber, Hidden: true, DefaultValue: int64(-1),
}

func nameField(msg string) metadata.FieldDescriptor {
	return metadata.FieldDescriptor{
		Name: "name", Label: "Name", Kind: metadata.KindText, Required: true,
		Validate:    metadata.MinLength(3, msg),
		Placeholder: "Enter a value",
	}
}

// NewRegistry builds and seals the entity graph.
func NewRegistry() (*metadata.Registry, error) {
	reg := metadata.NewRegistry()

	// Declared first so every reference has a slot before its target is built.
	for _, tag := range Tags {
		reg.Declare(tag)
	}

	location := metadata.NewEntity(TypeLocation, "Location", "map-pin",
		commonID,
		metadata.FieldDescriptor{Name: "name", Label: "Name", Kind: metadata.KindText, DefaultValue: "Location", Hidden: true},
		metadata.FieldDescriptor{Name: "x", Label: "X", Kind: metadata.KindNumber, Required: true},
		metadata.FieldDescriptor{Name: "y", Label: "Y", Kind: metadata.KindNumber, Required: true},
		metadata.FieldDescriptor{Name: "z", Label: "Z", Kind: metadata.KindNumber, Required: true},
		metadata.FieldDescriptor{Name: "yaw", Label: "Yaw", Kind: metadata.KindNumber, DefaultValue: int64(0)},
		metadata.FieldDescriptor{Name: "pitch", Label: "Pitch", Kind: metadata.KindNumber, DefaultValue: int64(0)},
		metadata.FieldDescriptor{Name: "worldName", Label: "World Name", Kind: metadata.KindText, Required: true, DefaultValue: "world"},
	)

	dominion := metadata.NewEntity(TypeDominion, "Dominion", "home",
		commonID,
		nameField("Name must be at least 3 characters"),
		metadata.FieldDescriptor{Name: "description", Label: "Description", Kind: metadata.KindText},
		metadata.FieldDescriptor{Name: "allowEntry", Label: "Allow Entry", Kind: metadata.KindBoolean, Required: true, DefaultValue: true},
		metadata.FieldDescriptor{Name: "wgRegionId", Label: "Region", Kind: metadata.KindText, Required: true},
		metadata.FieldDescriptor{Name: "created", Label: "Created", Kind: metadata.KindDate, Hidden: true},
		metadata.FieldDescriptor{Name: "location", Label: "Location", Kind: metadata.KindReference, Required: true, Reference: TypeLocation},
	).WithFormatter("wgRegionId", regionBadge)

	town := dominion.Extend(TypeTown, "Town", "home",
		nameField("Town name must be at least 3 characters"),
		metadata.FieldDescriptor{
			Name: "requiredTitle", Label: "Required Title", Kind: metadata.KindNumber, Required: true,
			DefaultValue: int64(1), Validate: metadata.Min(1, "Title must be larger than 0"),
		},
		metadata.FieldDescriptor{Name: "districts", Label: "Districts", Kind: metadata.KindReferenceList, Reference: TypeDistrict, Hidden: true},
	)

	district := dominion.Extend(TypeDistrict, "District", "map-pin",
		metadata.FieldDescriptor{Name: "town", Label: "Town", Kind: metadata.KindReference, Required: true, Reference: TypeTown},
		metadata.FieldDescriptor{Name: "streets", Label: "Streets", Kind: metadata.KindReferenceList, Reference: TypeStreet},
	).
		WithDisplayPolicy("town", metadata.DisplayIDAndName).
		WithDisplayPolicy("streets", metadata.DisplayNameOnly)

	street := metadata.NewEntity(TypeStreet, "Street", "map-pin",
		commonID,
		nameField("Street name must be at least 3 characters"),
		metadata.FieldDescriptor{Name: "districts", Label: "Districts", Kind: metadata.KindReferenceList, Reference: TypeDistrict},
	).WithDisplayPolicy("districts", metadata.DisplayNameOnly)

	structure := dominion.Extend(TypeStructure, "Structure", "building",
		metadata.FieldDescriptor{Name: "district", Label: "District", Kind: metadata.KindReference, Required: true, Reference: TypeDistrict},
		metadata.FieldDescriptor{Name: "street", Label: "Street", Kind: metadata.KindReference, Required: true, Reference: TypeStreet},
		metadata.FieldDescriptor{
			Name: "streetNumber", Label: "Street Number", Kind: metadata.KindNumber, Required: true,
			DependsOn: []string{"street"},
			Validate:  metadata.Min(1, "Street number must be positive"),
		},
		metadata.FieldDescriptor{Name: "storages", Label: "Storages", Kind: metadata.KindReferenceList, Reference: TypeStorage, Hidden: true},
	).
		WithFormatter("streetNumber", func(v any) metadata.Display {
			if v == nil {
				return metadata.Missing()
			}
			return metadata.Plain(fmt.Sprintf("#%s", record.Stringify(v)))
		}).
		WithDisplayPolicy("district", metadata.DisplayIDAndName).
		WithDisplayPolicy("street", metadata.DisplayNameOnly)

	storage := metadata.NewEntity(TypeStorage, "Storage", "package",
		commonID,
		metadata.FieldDescriptor{Name: "name", Label: "Name", Kind: metadata.KindText, Required: true, DefaultValue: "Storage"},
		metadata.FieldDescriptor{Name: "capacityMax", Label: "Capacity Max", Kind: metadata.KindNumber, Required: true, Validate: metadata.Min(0, "Capacity cannot be negative")},
		metadata.FieldDescriptor{Name: "capacity", Label: "Capacity", Kind: metadata.KindNumber, DefaultValue: int64(0)},
		metadata.FieldDescriptor{Name: "itemAmountMax", Label: "Item Amount Max", Kind: metadata.KindNumber, Required: true, Validate: metadata.Min(0, "Amount cannot be negative")},
		metadata.FieldDescriptor{Name: "itemAmount", Label: "Item Amount", Kind: metadata.KindNumber, DefaultValue: int64(0)},
		metadata.FieldDescriptor{Name: "structureId", Label: "Structure", Kind: metadata.KindNumber, Hidden: true},
	)

	item := metadata.NewEntity(TypeItem, "Item", "package",
		commonID,
		metadata.FieldDescriptor{
			Name: "name", Label: "Name", Kind: metadata.KindText, Required: true,
			Validate: metadata.MustExpr(`value.matches('^[a-z0-9-]+$')`,
				"Name must contain only lowercase letters, numbers, and hyphens"),
		},
		metadata.FieldDescriptor{Name: "displayName", Label: "Display Name", Kind: metadata.KindText, Required: true},
		metadata.FieldDescriptor{
			Name: "categoryId", Label: "Category", Kind: metadata.KindSelect, Required: true,
			Options: []metadata.Option{
				{Label: "Electronics", Value: "1"},
				{Label: "Furniture", Value: "2"},
				{Label: "Books", Value: "3"},
			},
		},
		metadata.FieldDescriptor{
			Name: "basePrice", Label: "Base Price", Kind: metadata.KindNumber, Required: true,
			Validate: metadata.Min(0, "Price cannot be negative"),
		},
	).
		WithFormatter("basePrice", Price).
		WithFormatter("categoryName", categoryBadge).
		WithFormatter("itemtypeName", categoryBadge)

	for _, cfg := range []*metadata.EntityConfig{location, dominion, town, district, street, structure, storage, item} {
		if _, err := reg.Register(cfg); err != nil {
			return nil, err
		}
	}
	if err := reg.Seal(); err != nil {
		return nil, fmt.Errorf("seal world registry: %w", err)
	}
	return reg, nil
}

// MustRegistry is NewRegistry that panics on error.
func MustRegistry() *metadata.Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}

func regionBadge(v any) metadata.Display {
	return metadata.Badge(record.Stringify(v), "purple")
}

func categoryBadge(v any) metadata.Display {
	return metadata.Badge(record.Stringify(v), "blue")
}

// Price renders a monetary amount with two decimals.
func Price(v any) metadata.Display {
	if v == nil {
		return metadata.Missing()
	}
	if m, ok := types.MoneyFromValue(v); ok {
		return metadata.Plain(types.FormatMoney(m))
	}
	if f, ok := record.Number(v); ok {
		m, _ := types.MoneyFromValue(f)
		return metadata.Plain(types.FormatMoney(m))
	}
	return metadata.Plain(record.Stringify(v))
}
