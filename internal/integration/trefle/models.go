package trefle

// Plant элемент списка/поиска таксономии
type Plant struct {
	ID               int    `json:"id"`
	CommonName       string `json:"common_name,omitempty"`
	ScientificName   string `json:"scientific_name,omitempty"`
	FamilyCommonName string `json:"family_common_name,omitempty"`
	ImageURL         string `json:"image_url,omitempty"`
	Slug             string `json:"slug,omitempty"`
}

// PlantDetail детальная запись таксономии
type PlantDetail struct {
	ID             int    `json:"id"`
	CommonName     string `json:"common_name,omitempty"`
	ScientificName string `json:"scientific_name,omitempty"`
	Family         string `json:"family,omitempty"`
	Genus          string `json:"genus,omitempty"`
	Observations   string `json:"observations,omitempty"`
	Vegetable      bool   `json:"vegetable"`
}

// Links пагинационные ссылки провайдера
type Links struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Next  string `json:"next,omitempty"`
}

// Meta метаданные ответа провайдера
type Meta struct {
	Total        int    `json:"total"`
	LastModified string `json:"last_modified,omitempty"`
}

// SearchResponse ответ списка/поиска
type SearchResponse struct {
	Data  []Plant `json:"data"`
	Links *Links  `json:"links,omitempty"`
	Meta  *Meta   `json:"meta,omitempty"`
}

// DetailResponse ответ детального запроса
type DetailResponse struct {
	Data *PlantDetail `json:"data,omitempty"`
	Meta *Meta        `json:"meta,omitempty"`
}
