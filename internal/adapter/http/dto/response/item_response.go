package response

import "clinic_review/internal/domain/entities"

type ItemResponse struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CatalogResponse struct {
	Items []ItemResponse `json:"items"`
}

func FromCatalog(items []entities.Item) CatalogResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ItemResponse{
			Category:    it.Category,
			Name:        it.Name,
			Description: it.Description,
		})
	}
	return CatalogResponse{Items: out}
}

type TokenResponse struct {
	Token string `json:"token"`
	Stage string `json:"stage"`
	Actor string `json:"actor"`
}
