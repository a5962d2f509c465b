package records

// Nombres de propiedades en el custom object remoto.
const (
	PropName       = "name"
	PropBio        = "bio"
	PropSpecies    = "species"
	PropCreateDate = "hs_createdate"
)

// PageSize es el máximo de registros que trae el listado (sin paginación).
const PageSize = 100

// Record es un registro del custom object. Vive solo en el CRM remoto;
// acá no se guarda nada entre requests.
type Record struct {
	ID         string
	CreateDate string // ISO-8601, lo asigna el CRM
	Name       string
	Bio        string
	Species    string
}

// Properties son los campos que manda el usuario al crear.
type Properties struct {
	Name    string
	Bio     string
	Species string
}

// SearchQuery describe una búsqueda contra el CRM.
type SearchQuery struct {
	Properties []string
	Sorts      []string
	Limit      int
}

// DefaultSearchQuery: las cuatro propiedades, más nuevos primero, hasta PageSize.
// El desempate entre fechas iguales queda en manos del CRM.
func DefaultSearchQuery() SearchQuery {
	return SearchQuery{
		Properties: []string{PropName, PropBio, PropSpecies, PropCreateDate},
		Sorts:      []string{"-" + PropCreateDate},
		Limit:      PageSize,
	}
}
