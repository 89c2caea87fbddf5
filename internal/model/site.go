package model

type Site struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type CategorySites struct {
	CategoryName string `json:"category_name"`
	Sites        []Site `json:"sites"`
}

type GetSiteDirectoryRequest struct{}

type GetSiteDirectoryResponse struct {
	Categories []CategorySites `json:"categories"`
}

type CreateSiteRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type CreateSiteResponse struct {
	Site Site `json:"site"`
}
