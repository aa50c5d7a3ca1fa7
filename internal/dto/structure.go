package dto

import (
	"cmp"
	"encoding/json"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"
)

// StructureStreetWire is the street summary embedded in GetStructureView.
type StructureStreetWire struct {
	Id        int64     `json:"Id"`
	Name      string    `json:"Name"`
	Districts []RefWire `json:"Districts"`
}

// StructureStreetView keys district names by district id.
// Converting back yields districts ordered by id, not by their original order.
type StructureStreetView struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Districts map[string]string `json:"districts"`
}

// StructureWire is a structure as delivered by GetStructureView.
// Storages uses a lowercase key on this endpoint.
type StructureWire struct {
	DominionWire
	District     *DistrictWire        `json:"District"`
	Street       *StructureStreetWire `json:"Street"`
	StreetNumber int64                `json:"StreetNumber"`
	Storages     []StorageWire        `json:"storages"`
}

// StructureView is the view shape of a structure.
type StructureView struct {
	DominionView
	District     *DistrictView        `json:"district"`
	Street       *StructureStreetView `json:"street"`
	StreetNumber int64                `json:"streetNumber"`
	Storages     []StorageView        `json:"storages"`
}

// StructureCreate is the create payload for a structure.
type StructureCreate struct {
	DominionCreate
	StreetId     *int64          `json:"StreetId,omitempty"`
	Street       *StreetCreate   `json:"Street,omitempty"`
	StreetNumber int64           `json:"StreetNumber,omitempty"`
	DistrictId   *int64          `json:"DistrictId,omitempty"`
	District     *DistrictCreate `json:"District,omitempty"`
}

// UnmarshalJSON accepts districts either as the id-keyed map or as a list of
// {id, name} objects, which is how the Streets list delivers them.
func (v *StructureStreetView) UnmarshalJSON(data []byte) error {
	var head struct {
		ID        int64           `json:"id"`
		Name      string          `json:"name"`
		Districts json.RawMessage `json:"districts"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	v.ID, v.Name = head.ID, head.Name
	v.Districts = map[string]string{}

	districts := gjson.ParseBytes(head.Districts)
	switch {
	case districts.IsArray():
		districts.ForEach(func(_, d gjson.Result) bool {
			v.Districts[d.Get("id").String()] = d.Get("name").String()
			return true
		})
	case districts.IsObject():
		districts.ForEach(func(k, name gjson.Result) bool {
			v.Districts[k.String()] = name.String()
			return true
		})
	}
	return nil
}

func StructureStreetFromWire(w *StructureStreetWire) *StructureStreetView {
	if w == nil {
		return nil
	}
	v := &StructureStreetView{ID: w.Id, Name: w.Name, Districts: make(map[string]string, len(w.Districts))}
	for _, d := range w.Districts {
		v.Districts[strconv.FormatInt(d.Id, 10)] = d.Name
	}
	return v
}

func StructureStreetToWire(v *StructureStreetView) *StructureStreetWire {
	if v == nil {
		return nil
	}
	w := &StructureStreetWire{Id: v.ID, Name: v.Name}
	for key, name := range v.Districts {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		w.Districts = append(w.Districts, RefWire{Id: id, Name: name})
	}
	slices.SortFunc(w.Districts, func(a, b RefWire) int {
		return cmp.Compare(a.Id, b.Id)
	})
	return w
}

func StructureFromWire(w *StructureWire) *StructureView {
	if w == nil {
		return nil
	}
	v := &StructureView{
		DominionView: DominionFromWire(w.DominionWire),
		District:     DistrictFromWire(w.District),
		Street:       StructureStreetFromWire(w.Street),
		StreetNumber: w.StreetNumber,
		Storages:     make([]StorageView, 0, len(w.Storages)),
	}
	for i := range w.Storages {
		v.Storages = append(v.Storages, *StorageFromWire(&w.Storages[i]))
	}
	return v
}

func StructureToWire(v *StructureView) *StructureWire {
	if v == nil {
		return nil
	}
	w := &StructureWire{
		DominionWire: DominionToWire(v.DominionView),
		District:     DistrictToWire(v.District),
		Street:       StructureStreetToWire(v.Street),
		StreetNumber: v.StreetNumber,
	}
	for i := range v.Storages {
		w.Storages = append(w.Storages, *StorageToWire(&v.Storages[i]))
	}
	return w
}

func StructureToCreate(v *StructureView) *StructureCreate {
	if v == nil {
		return nil
	}
	c := &StructureCreate{
		DominionCreate: DominionToCreate(v.DominionView),
		StreetNumber:   v.StreetNumber,
	}
	if v.Street != nil {
		c.StreetId = refID(v.Street.ID)
		if isNew(v.Street.ID) {
			c.Street = &StreetCreate{Id: v.Street.ID, Name: v.Street.Name}
			for _, d := range StructureStreetToWire(v.Street).Districts {
				c.Street.DistrictIds = append(c.Street.DistrictIds, d.Id)
			}
		}
	}
	if v.District != nil {
		c.DistrictId = refID(v.District.ID)
		if isNew(v.District.ID) {
			c.District = DistrictToCreate(v.District)
		}
	}
	return c
}
