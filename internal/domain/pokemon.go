package domain

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const spriteURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"

// Pokemon is the normalized catalog entry shared by every layer above the
// wire types.
type Pokemon struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Number      *int     `json:"number,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Categories  []string `json:"categories"`
}

// SpriteURL returns the sprite location for a catalog number. The same number
// always maps to the same URL.
func SpriteURL(number int) string {
	return fmt.Sprintf(spriteURLFormat, number)
}

func capitalize(name string) string {
	return cases.Title(language.English).String(name)
}

// numberFromURL parses the trailing path segment of a resource URL as the
// catalog number, tolerating one trailing slash. Returns nil unless the
// segment is a positive integer.
func numberFromURL(rawURL string) *int {
	segment := path.Base(strings.TrimSuffix(rawURL, "/"))
	number, err := strconv.Atoi(segment)
	if err != nil || number <= 0 {
		return nil
	}
	return &number
}
