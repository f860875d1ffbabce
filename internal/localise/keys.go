// Package localise derives translation keys for public app content.
//
// User-supplied app texts are not served verbatim by the public API.
// Clients resolve them through the translation service using the keys
// built here.
package localise

import (
	"regexp"
	"strings"
)

// Field identifies a translatable app metadata field.
type Field string

const (
	DescriptionOverview   Field = "description_overview"
	DescriptionHowItWorks Field = "description_how_it_works"
	DescriptionConnect    Field = "description_connect"
	WorldAppButtonText    Field = "world_app_button_text"
	WorldAppDescription   Field = "world_app_description"
)

// Fields lists every translatable field.
var Fields = []Field{
	DescriptionOverview,
	DescriptionHowItWorks,
	DescriptionConnect,
	WorldAppButtonText,
	WorldAppDescription,
}

const keyPrefix = "world_id_partner_"

var nonKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// CategoryKey returns the translation key of a category name.
// "Games & Fun" becomes "world_id_partner_category_games_fun".
func CategoryKey(category string) string {
	slug := nonKeyChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(category)), "_")
	return keyPrefix + "category_" + strings.Trim(slug, "_")
}

// FieldKey returns the translation key of field for the given app.
func FieldKey(appID string, field Field) string {
	return keyPrefix + appID + "_" + string(field)
}

// IsValid reports whether f is a known field.
func (f Field) IsValid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}
