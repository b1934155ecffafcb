package calendar

// Style is the badge color and icon name a category renders with.
type Style struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// DefaultStyle is used for categories missing from the table.
var DefaultStyle = Style{Color: "#6B7280", Icon: "Calendar"}

// Styles is the single styling table for every calendar variant.
var Styles = map[string]Style{
	CategoryDailyTask: {Color: "#3B82F6", Icon: "CheckSquare"},
	CategoryMeeting:   {Color: "#8B5CF6", Icon: "Users"},
	CategoryReminder:  {Color: "#F59E0B", Icon: "Bell"},
	CategoryDeadline:  {Color: "#EF4444", Icon: "AlertCircle"},
	CategoryLeaves:    {Color: "#10B981", Icon: "Plane"},
	CategoryOther:     {Color: "#6B7280", Icon: "Calendar"},
	CategoryBirthday:  {Color: "#EC4899", Icon: "Gift"},
}

// StyleFor looks up a category, falling back to DefaultStyle.
func StyleFor(category string) Style {
	if s, ok := Styles[category]; ok {
		return s
	}
	return DefaultStyle
}

// Variant names a calendar screen's category set.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantPersonal Variant = "personal"
)

// CategoriesFor returns the categories a screen variant offers.
func CategoriesFor(v Variant) []string {
	if v == VariantPersonal {
		return PersonalCategories
	}
	return BaseCategories
}
