package dto

// StorageWire is the concise storage view returned by the Storages controller.
type StorageWire struct {
	Id            int64  `json:"Id"`
	Name          string `json:"Name"`
	CapacityMax   int64  `json:"CapacityMax"`
	Capacity      int64  `json:"Capacity"`
	ItemAmountMax int64  `json:"ItemAmountMax"`
	ItemAmount    int64  `json:"ItemAmount"`
	StructureId   *int64 `json:"StructureId,omitempty"`
	StructureName string `json:"StructureName,omitempty"`
}

// StorageView is the view shape of a storage.
type StorageView struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CapacityMax   int64  `json:"capacityMax"`
	Capacity      int64  `json:"capacity"`
	ItemAmountMax int64  `json:"itemAmountMax"`
	ItemAmount    int64  `json:"itemAmount"`
	StructureId   *int64 `json:"structureId"`
	StructureName string `json:"structureName,omitempty"`
}

// StorageCreate is the create payload for a storage.
type StorageCreate = StorageWire

func StorageFromWire(w *StorageWire) *StorageView {
	if w == nil {
		return nil
	}
	return &StorageView{
		ID:            w.Id,
		Name:          w.Name,
		CapacityMax:   w.CapacityMax,
		Capacity:      w.Capacity,
		ItemAmountMax: w.ItemAmountMax,
		ItemAmount:    w.ItemAmount,
		StructureId:   w.StructureId,
		StructureName: w.StructureName,
	}
}

func StorageToWire(v *StorageView) *StorageWire {
	if v == nil {
		return nil
	}
	return &StorageWire{
		Id:            v.ID,
		Name:          v.Name,
		CapacityMax:   v.CapacityMax,
		Capacity:      v.Capacity,
		ItemAmountMax: v.ItemAmountMax,
		ItemAmount:    v.ItemAmount,
		StructureId:   v.StructureId,
		StructureName: v.StructureName,
	}
}

func StorageToCreate(v *StorageView) *StorageCreate {
	return StorageToWire(v)
}
