package domain

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PageResponse is one page of the paginated list endpoint.
type PageResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next,omitempty"`
	Previous *string         `json:"previous,omitempty"`
	Results  []NamedResource `json:"results"`
}

// ToPokemon maps a list entry to a catalog record. List entries carry no type
// information, so Categories is always empty here.
func (r NamedResource) ToPokemon() Pokemon {
	p := Pokemon{
		ID:          r.Name,
		DisplayName: capitalize(r.Name),
		Number:      numberFromURL(r.URL),
		Categories:  []string{},
	}
	if p.Number != nil {
		imageURL := SpriteURL(*p.Number)
		p.ImageURL = &imageURL
	}
	return p
}
