package placeholder

import "strings"

// Kind identifies what a placeholder alternative stands for.
type Kind int

const (
	// KindUnknown is a percent placeholder that is not registered. It never resolves.
	KindUnknown Kind = iota
	// KindLiteral is literal fallback text. It always resolves to itself.
	KindLiteral

	KindYear
	KindMonth
	KindDay
	KindCreatedYear
	KindCreatedMonth
	KindCreatedDay
	KindModifiedYear
	KindModifiedMonth
	KindModifiedDay
	KindWidth
	KindHeight
	KindCameraModel
	KindCameraBrand
	KindCountry
	KindState
	KindCounty
	KindMunicipality
	KindCity
	KindOriginalFilename
	KindOriginalFolder
)

// Category groups kinds by the provider that resolves them.
type Category int

const (
	CategoryNone Category = iota
	CategoryMetadata
	CategoryFilesystem
	CategoryLocation
	CategoryPath
)

func (c Category) String() string {
	switch c {
	case CategoryMetadata:
		return "metadata"
	case CategoryFilesystem:
		return "filesystem"
	case CategoryLocation:
		return "location"
	case CategoryPath:
		return "path"
	default:
		return "none"
	}
}

type kindInfo struct {
	name     string
	label    string
	category Category
}

var kinds = map[Kind]kindInfo{
	KindYear:             {"year", "Year", CategoryMetadata},
	KindMonth:            {"month", "Month", CategoryMetadata},
	KindDay:              {"day", "Day", CategoryMetadata},
	KindCreatedYear:      {"created_year", "Created Year", CategoryFilesystem},
	KindCreatedMonth:     {"created_month", "Created Month", CategoryFilesystem},
	KindCreatedDay:       {"created_day", "Created Day", CategoryFilesystem},
	KindModifiedYear:     {"modified_year", "Modified Year", CategoryFilesystem},
	KindModifiedMonth:    {"modified_month", "Modified Month", CategoryFilesystem},
	KindModifiedDay:      {"modified_day", "Modified Day", CategoryFilesystem},
	KindWidth:            {"width", "Width", CategoryMetadata},
	KindHeight:           {"height", "Height", CategoryMetadata},
	KindCameraModel:      {"camera_model", "Camera Model", CategoryMetadata},
	KindCameraBrand:      {"camera_brand", "Camera Brand", CategoryMetadata},
	KindCountry:          {"country", "Country", CategoryLocation},
	KindState:            {"state", "State", CategoryLocation},
	KindCounty:           {"county", "County", CategoryLocation},
	KindMunicipality:     {"municipality", "Municipality", CategoryLocation},
	KindCity:             {"city", "City", CategoryLocation},
	KindOriginalFilename: {"original_filename", "Original Filename", CategoryPath},
	KindOriginalFolder:   {"original_folder", "Original Folder", CategoryPath},
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for k, info := range kinds {
		m[info.name] = k
	}
	return m
}()

// Classify maps alternative text to its kind. Text starting with '%' is
// looked up by exact, case-sensitive name; anything else is literal.
//
//	Classify("%year")    // KindYear
//	Classify("%Year")    // KindUnknown
//	Classify("No Date")  // KindLiteral
func Classify(text string) Kind {
	name, ok := strings.CutPrefix(text, "%")
	if !ok {
		return KindLiteral
	}
	if k, ok := byName[name]; ok {
		return k
	}
	return KindUnknown
}

// Lookup returns the kind registered under a placeholder name without the
// leading percent sign.
func Lookup(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

// Names returns the registered placeholder names in declaration order.
func Names() []string {
	names := make([]string, 0, len(kinds))
	for k := KindYear; k <= KindOriginalFolder; k++ {
		names = append(names, "%"+kinds[k].name)
	}
	return names
}

// Category returns the provider category of the kind.
func (k Kind) Category() Category {
	return kinds[k].category
}

// Label is the human readable field name used in "Unknown <Label>".
func (k Kind) Label() string {
	return kinds[k].label
}

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindLiteral:
		return "literal"
	}
	return kinds[k].name
}

// Requirements tells which per-file providers a template depends on.
type Requirements struct {
	Metadata   bool
	Filesystem bool
	Location   bool
}

func (r Requirements) with(k Kind) Requirements {
	switch k.Category() {
	case CategoryMetadata:
		r.Metadata = true
	case CategoryFilesystem:
		r.Filesystem = true
	case CategoryLocation:
		r.Location = true
	}
	return r
}

// NeedsMetadata reports whether any alternative reads embedded media metadata.
func NeedsMetadata(alternatives []string) bool {
	return needs(alternatives, CategoryMetadata)
}

// NeedsFilesystemTime reports whether any alternative reads filesystem timestamps.
func NeedsFilesystemTime(alternatives []string) bool {
	return needs(alternatives, CategoryFilesystem)
}

// NeedsLocation reports whether any alternative needs reverse geocoding.
func NeedsLocation(alternatives []string) bool {
	return needs(alternatives, CategoryLocation)
}

func needs(alternatives []string, c Category) bool {
	for _, a := range alternatives {
		if Classify(a).Category() == c {
			return true
		}
	}
	return false
}
