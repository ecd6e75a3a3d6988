package profession

// ID identifies a profession skill track.
type ID string

const (
	Alchemy        ID = "alchemy"
	FirstAid       ID = "first-aid"
	Blacksmithing  ID = "blacksmithing"
	Leatherworking ID = "leatherworking"
	Tailoring      ID = "tailoring"
	Engineering    ID = "engineering"
	Enchanting     ID = "enchanting"
	Cooking        ID = "cooking"
)

// Profession describes a skill track. Professions that are not implemented
// are listed for display but cannot run crafts.
type Profession struct {
	ID          ID
	Name        string
	Description string
	Implemented bool
}

var professions = []Profession{
	{ID: Alchemy, Name: "Alchemy", Description: "Brew potions, elixirs and flasks from herbs and reagents.", Implemented: true},
	{ID: FirstAid, Name: "First Aid", Description: "Craft bandages, salves and field remedies.", Implemented: true},
	{ID: Blacksmithing, Name: "Blacksmithing", Description: "Forge weapons and armor from metal bars."},
	{ID: Leatherworking, Name: "Leatherworking", Description: "Cure hides into leather armor and kits."},
	{ID: Tailoring, Name: "Tailoring", Description: "Sew cloth into garments and bags."},
	{ID: Engineering, Name: "Engineering", Description: "Assemble gadgets, explosives and devices."},
	{ID: Enchanting, Name: "Enchanting", Description: "Imbue equipment with arcane properties."},
	{ID: Cooking, Name: "Cooking", Description: "Prepare meals that grant lasting benefits."},
}

// All returns every profession in display order.
func All() []Profession {
	out := make([]Profession, len(professions))
	copy(out, professions)
	return out
}

// Implemented returns the professions that can run crafts.
func Implemented() []Profession {
	var out []Profession
	for _, p := range professions {
		if p.Implemented {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the profession with the given id.
func Lookup(id ID) (Profession, bool) {
	for _, p := range professions {
		if p.ID == id {
			return p, true
		}
	}
	return Profession{}, false
}

// DisplayName returns a human-readable name for a profession id.
func DisplayName(id ID) string {
	if p, ok := Lookup(id); ok {
		return p.Name
	}
	return string(id)
}
