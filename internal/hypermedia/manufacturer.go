package hypermedia

import "net/http"

const (
	StorageNamespace = "storage"
	LinkRelations    = "/api/link-relations/"

	RelManufacturerAll = "storage:manufacturer-all"
	RelManufacturer    = "storage:manufacturer"
)

func ManufacturerSchema() *Schema {
	return ObjectSchema("name", "image", "description").
		Prop("name", "string", "Manufacturer's name").
		Prop("image", "string", "Manufacturer's image").
		Prop("description", "string", "Manufacturer's description")
}

// AddManufacturerCollection links to the manufacturer collection.
func (m *Meta) AddManufacturerCollection(href string) {
	m.AddControl(RelManufacturerAll, href, Control{
		Method: http.MethodGet,
		Title:  "All manufacturers",
	})
}

// AddManufacturer links to one manufacturer and describes its payload.
func (m *Meta) AddManufacturer(href string) {
	m.AddControl(RelManufacturer, href, Control{
		Method: http.MethodGet,
		Title:  "View a manufacturer",
		Schema: ManufacturerSchema(),
	})
}
