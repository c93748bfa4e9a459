package domain

// Codelists are the closed vocabularies the API exposes for building forms
// and filters. They are process-wide constants; codes are stored, display
// names are presentation only.

const (
	GenderMale   = "m"
	GenderFemale = "f"
)

const (
	MaritalStatusSingle   = "single"
	MaritalStatusMarried  = "married"
	MaritalStatusDivorced = "divorced"
	MaritalStatusWidowed  = "widowed"
)

type CodelistOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// MaritalStatusName carries the gendered display variants of a marital
// status alongside the general one.
type MaritalStatusName struct {
	General string `json:"general"`
	Male    string `json:"m"`
	Female  string `json:"f"`
}

type MaritalStatusOption struct {
	Code string            `json:"code"`
	Name MaritalStatusName `json:"name"`
}

type Codelists struct {
	MaritalStatuses []MaritalStatusOption `json:"marital_statuses"`
	Genders         []CodelistOption      `json:"genders"`
	TitlesBefore    []CodelistOption      `json:"titles_before"`
	TitlesAfter     []CodelistOption      `json:"titles_after"`
}

var genderNames = map[string]string{
	GenderMale:   "muž",
	GenderFemale: "žena",
}

var maritalStatusCodes = []string{
	MaritalStatusSingle,
	MaritalStatusMarried,
	MaritalStatusDivorced,
	MaritalStatusWidowed,
}

var maritalStatusNames = map[string]MaritalStatusName{
	MaritalStatusSingle:   {General: "slobodný / slobodná", Male: "slobodný", Female: "slobodná"},
	MaritalStatusMarried:  {General: "ženatý / vydatá", Male: "ženatý", Female: "vydatá"},
	MaritalStatusDivorced: {General: "rozvedený / rozvedená", Male: "rozvedený", Female: "rozvedená"},
	MaritalStatusWidowed:  {General: "vdovec / vdova", Male: "vdovec", Female: "vdova"},
}

var titleBeforeCodes = []string{
	"Bc.", "Mgr.", "Ing.", "JUDr.", "MVDr.", "MUDr.", "PaedDr.",
	"prof.", "doc.", "dipl.", "MDDr.", "Dr.", "Mgr. art.", "ThLic.",
	"PhDr.", "PhMr.", "RNDr.", "ThDr.", "RSDr.", "arch.", "PharmDr.",
}

var titleAfterCodes = []string{
	"CSc.", "DrSc.", "PhD.", "ArtD.", "DiS", "DiS.art", "FEBO", "MPH",
	"BSBA", "MBA", "DBA", "MHA", "FCCA", "MSc.", "FEBU", "LL.M",
}

func IsValidGender(code string) bool {
	_, ok := genderNames[code]
	return ok
}

func IsValidMaritalStatus(code string) bool {
	_, ok := maritalStatusNames[code]
	return ok
}

func IsValidTitleBefore(code string) bool {
	return containsCode(titleBeforeCodes, code)
}

func IsValidTitleAfter(code string) bool {
	return containsCode(titleAfterCodes, code)
}

// GenderDisplayName returns the localized name for a gender code, or the
// code itself when it is unknown.
func GenderDisplayName(code string) string {
	if name, ok := genderNames[code]; ok {
		return name
	}
	return code
}

// MaritalStatusDisplayName returns the display name of a marital status for
// the given gender (falling back to the general variant).
func MaritalStatusDisplayName(code, gender string) string {
	name, ok := maritalStatusNames[code]
	if !ok {
		return code
	}
	switch gender {
	case GenderMale:
		return name.Male
	case GenderFemale:
		return name.Female
	}
	return name.General
}

func GenderOptions() []CodelistOption {
	return []CodelistOption{
		{Code: GenderMale, Name: genderNames[GenderMale]},
		{Code: GenderFemale, Name: genderNames[GenderFemale]},
	}
}

func MaritalStatusOptions() []MaritalStatusOption {
	options := make([]MaritalStatusOption, 0, len(maritalStatusCodes))
	for _, code := range maritalStatusCodes {
		options = append(options, MaritalStatusOption{Code: code, Name: maritalStatusNames[code]})
	}
	return options
}

func TitleBeforeOptions() []CodelistOption {
	return titleOptions(titleBeforeCodes)
}

func TitleAfterOptions() []CodelistOption {
	return titleOptions(titleAfterCodes)
}

// FilterValidTitlesBefore keeps only vocabulary-valid titles, preserving
// order. Returns nil when nothing survives.
func FilterValidTitlesBefore(values []string) []string {
	return filterValid(values, IsValidTitleBefore)
}

func FilterValidTitlesAfter(values []string) []string {
	return filterValid(values, IsValidTitleAfter)
}

func GetCodelists() Codelists {
	return Codelists{
		MaritalStatuses: MaritalStatusOptions(),
		Genders:         GenderOptions(),
		TitlesBefore:    TitleBeforeOptions(),
		TitlesAfter:     TitleAfterOptions(),
	}
}

func titleOptions(codes []string) []CodelistOption {
	options := make([]CodelistOption, 0, len(codes))
	for _, code := range codes {
		options = append(options, CodelistOption{Code: code, Name: code})
	}
	return options
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func filterValid(values []string, isValid func(string) bool) []string {
	var valid []string
	for _, v := range values {
		if isValid(v) {
			valid = append(valid, v)
		}
	}
	return valid
}
