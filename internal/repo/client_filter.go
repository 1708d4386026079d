package repo

// ClientFilter holds the optional constraints of a paged client listing.
// Empty strings mean "do not constrain". Date bounds are inclusive and use
// the YYYY-MM-DD layout.
type ClientFilter struct {
	Name          string
	Surname       string
	CPF           string
	Sex           string
	Profession    string
	MaritalStatus string
	CreatedFrom   string
	CreatedTo     string
	BirthFrom     string
	BirthTo       string
	City          string
	State         string
	Email         string
	Mobile        string

	SortField string
	SortDesc  bool
	Offset    *int
	Limit     *int
}

// clientSortColumns whitelists the sortable fields and maps them to columns.
var clientSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"surname":    "surname",
	"cpf":        "cpf",
	"created_at": "created_at",
	"birth_date": "birth_date",
}

// IsClientSortField reports whether field can be used to sort clients.
func IsClientSortField(field string) bool {
	_, ok := clientSortColumns[field]
	return ok
}
