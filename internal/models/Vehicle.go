// internal/models/vehicle.go
package models

// Vehicle is embedded in Driver; the columns live on the drivers table as
// vehicle_brand, vehicle_color and vehicle_plate.
type Vehicle struct {
	Brand string `json:"vehicle_brand"`
	Color string `json:"vehicle_color"`
	Plate string `json:"vehicle_plate"`
}

// Merge copies the non-nil fields of the patch over v.
func (v *Vehicle) Merge(brand, color, plate *string) {
	if brand != nil {
		v.Brand = *brand
	}
	if color != nil {
		v.Color = *color
	}
	if plate != nil {
		v.Plate = *plate
	}
}
