package gateway

import "knkadmin/internal/domain/world"

// Endpoint names the API controller of an entity type and its by-id operation.
type Endpoint struct {
	Controller string
	ByID       string
}

// DefaultEndpoints maps every entity type to its API controller.
func DefaultEndpoints() map[string]Endpoint {
	return map[string]Endpoint{
		world.TypeStructure: {Controller: "Structures", ByID: "GetStructureView"},
		world.TypeDistrict:  {Controller: "Districts", ByID: "GetDistrict"},
		world.TypeStreet:    {Controller: "Streets", ByID: "GetStreet"},
		world.TypeTown:      {Controller: "Towns", ByID: "GetTown"},
		world.TypeLocation:  {Controller: "Locations", ByID: "GetLocation"},
		world.TypeDominion:  {Controller: "Dominions", ByID: "GetDominion"},
		world.TypeItem:      {Controller: "Items", ByID: "GetItem"},
		world.TypeStorage:   {Controller: "Storages", ByID: "GetStorage"},
	}
}
