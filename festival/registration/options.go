package registration

import "strconv"

// Option is one button of a fixed option set. Value is the stable callback
// value; Label is what the user sees; Stored is what ends up in the record.
type Option struct {
	Value  string
	Label  string
	Stored string
}

const (
	MinTeamSize = 2
	MaxTeamSize = 5
)

// Roles is the branch-entry option set.
var Roles = []Option{
	{Value: string(RoleSpectator), Label: "🎣 Я ПРИДУ КАК ЗРИТЕЛЬ", Stored: string(RoleSpectator)},
	{Value: string(RoleParticipant), Label: "🏆 ХОЧУ ПРИНЯТЬ УЧАСТИЕ", Stored: string(RoleParticipant)},
}

// VisitDates are the festival days a spectator can pick.
var VisitDates = []Option{
	{Value: "date_31", Label: "📅 31 мая", Stored: "31 мая"},
	{Value: "date_1", Label: "📅 1 июня", Stored: "1 июня"},
	{Value: "date_both", Label: "📅 Буду 2 дня", Stored: "31 мая и 1 июня"},
}

// AttendanceModes tells whether a spectator comes alone or with family.
var AttendanceModes = []Option{
	{Value: "family_size_1", Label: "👤 Приду один", Stored: "один"},
	{Value: "family_size_family", Label: "👨‍👩‍👧‍👦 Приду с семьёй", Stored: "с семьёй"},
}

// TeamSizes is built from MinTeamSize..MaxTeamSize.
var TeamSizes = teamSizes()

// SpecialStatuses answers the disability/veteran household question.
var SpecialStatuses = []Option{
	{Value: "special_status_yes", Label: "✅ Да", Stored: "yes"},
	{Value: "special_status_no", Label: "❌ Нет", Stored: "no"},
}

// Accommodations are the overnight packages.
var Accommodations = []Option{
	{Value: "accommodation_home", Label: "🏠 Ночуем дома", Stored: "home"},
	{Value: "accommodation_own_tent", Label: "⛺ Ночуем в своей палатке", Stored: "own_tent"},
	{Value: "accommodation_rent_tent", Label: "⛺ Нужна аренда палатки", Stored: "rent_tent"},
	{Value: "accommodation_room", Label: "🏨 Размещение в номере", Stored: "room"},
}

func teamSizes() []Option {
	out := make([]Option, 0, MaxTeamSize-MinTeamSize+1)
	for i := MinTeamSize; i <= MaxTeamSize; i++ {
		n := strconv.Itoa(i)
		out = append(out, Option{Value: "team_" + n, Label: "👥 " + n + " человек", Stored: n})
	}
	return out
}

// FindOption returns the option whose callback value is value.
func FindOption(set []Option, value string) (Option, bool) {
	for _, o := range set {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// LookupOption returns the option whose stored form is stored.
func LookupOption(set []Option, stored string) (Option, bool) {
	for _, o := range set {
		if o.Stored == stored {
			return o, true
		}
	}
	return Option{}, false
}
