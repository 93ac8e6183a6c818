package domain

type SpriteSet struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
}

type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type StatValue struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// PokemonDetail is the detail endpoint payload, field names as on the wire.
type PokemonDetail struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"`
	Weight    int           `json:"weight"`
	Sprites   SpriteSet     `json:"sprites"`
	Types     []TypeSlot    `json:"types"`
	Abilities []AbilitySlot `json:"abilities"`
	Stats     []StatValue   `json:"stats"`
}

// ToPokemon maps a detail payload to a catalog record. Categories are the
// type names in slot order as delivered by the API.
func (d *PokemonDetail) ToPokemon() Pokemon {
	p := Pokemon{
		ID:          d.Name,
		DisplayName: capitalize(d.Name),
		Categories:  make([]string, 0, len(d.Types)),
	}
	for _, slot := range d.Types {
		p.Categories = append(p.Categories, slot.Type.Name)
	}
	if d.ID > 0 {
		number := d.ID
		imageURL := SpriteURL(number)
		p.Number = &number
		p.ImageURL = &imageURL
	}
	return p
}
