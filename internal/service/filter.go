package service

// FilterField selects which single contact column a search matches on
type FilterField int

const (
	FilterNone FilterField = iota
	FilterName
	FilterSurname
	FilterEmail
)

func (f FilterField) column() string {
	switch f {
	case FilterName:
		return "name"
	case FilterSurname:
		return "surname"
	case FilterEmail:
		return "email"
	}

	return ""
}

type FilterBy struct {
	Field FilterField
	Value string
}

// ResolveFilter picks the first non-empty value in name, surname, email order
func ResolveFilter(name, surname, email string) FilterBy {
	switch {
	case name != "":
		return FilterBy{Field: FilterName, Value: name}
	case surname != "":
		return FilterBy{Field: FilterSurname, Value: surname}
	case email != "":
		return FilterBy{Field: FilterEmail, Value: email}
	}

	return FilterBy{Field: FilterNone}
}
