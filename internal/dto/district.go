package dto

// DistrictWire is a district as delivered by the API.
type DistrictWire struct {
	DominionWire
	Town    *TownWire    `json:"Town"`
	Streets []StreetWire `json:"Streets"`
}

// DistrictView is the view shape of a district.
type DistrictView struct {
	DominionView
	Town    *TownView    `json:"town"`
	Streets []StreetView `json:"streets"`
}

// DistrictCreate is the create payload for a district.
type DistrictCreate struct {
	DominionCreate
	TownId *int64      `json:"TownId,omitempty"`
	Town   *TownCreate `json:"Town,omitempty"`
}

func DistrictFromWire(w *DistrictWire) *DistrictView {
	if w == nil {
		return nil
	}
	v := &DistrictView{
		DominionView: DominionFromWire(w.DominionWire),
		Town:         TownFromWire(w.Town),
		Streets:      make([]StreetView, 0, len(w.Streets)),
	}
	for i := range w.Streets {
		v.Streets = append(v.Streets, *StreetFromWire(&w.Streets[i]))
	}
	return v
}

func DistrictToWire(v *DistrictView) *DistrictWire {
	if v == nil {
		return nil
	}
	w := &DistrictWire{
		DominionWire: DominionToWire(v.DominionView),
		Town:         TownToWire(v.Town),
	}
	for i := range v.Streets {
		w.Streets = append(w.Streets, *StreetToWire(&v.Streets[i]))
	}
	return w
}

func DistrictToCreate(v *DistrictView) *DistrictCreate {
	if v == nil {
		return nil
	}
	c := &DistrictCreate{DominionCreate: DominionToCreate(v.DominionView)}
	if v.Town != nil {
		c.TownId = refID(v.Town.ID)
		if isNew(v.Town.ID) {
			c.Town = TownToCreate(v.Town)
		}
	}
	return c
}
