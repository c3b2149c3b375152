package model

// Vehicle is the damaged vehicle of a dossier.
type Vehicle struct {
	ID    string `json:"id" db:"id"`
	Plate string `json:"plate" db:"plate"`
	VIN   string `json:"vin" db:"vin"`
}

// SearchKey returns the plate, or the VIN when no plate is recorded.
func (v *Vehicle) SearchKey() string {
	if v == nil {
		return ""
	}
	if v.Plate != "" {
		return v.Plate
	}
	return v.VIN
}
