// Package model defines the survey response data types and the canonical
// column layout of the output workbook.
package model

import "strconv"

// Label values persisted in the workbook.
const (
	Yes = "SI"
	No  = "NO"

	SexMale   = "Hombre"
	SexFemale = "Mujer"

	RightHanded = "Diestro/a"
	LeftHanded  = "Zurdo/a"

	// DateLayout is the DD/MM/YYYY layout used for the Fecha column.
	DateLayout = "02/01/2006"
)

// Sheet names of the output workbook.
const (
	ResponsesSheet  = "Respuestas"
	ParametersSheet = "Parametros"
)

// Zones are the anatomical regions of the questionnaire, in column order.
var Zones = []string{
	"Cuello",
	"Hombro Derecho",
	"Hombro Izquierdo",
	"Codo/antebrazo Derecho",
	"Codo/antebrazo Izquierdo",
	"Muñeca/mano Derecha",
	"Muñeca/mano Izquierda",
	"Espalda Alta",
	"Espalda Baja",
	"Caderas/nalgas/muslos",
	"Rodillas (una o ambas)",
	"Pies/tobillos (uno o ambos)",
}

// Zone column suffixes.
const (
	SuffixPain12m      = "__12m"
	SuffixDisabled     = "__Incap"
	SuffixIntensity12m = "__Dolor12m"
	SuffixPain7d       = "__7d"
	SuffixIntensity7d  = "__Dolor7d"
)

// Base column names.
const (
	ColID                  = "ID"
	ColDate                = "Fecha"
	ColArea                = "Area"
	ColRole                = "Puesto_de_Trabajo"
	ColName                = "Nombre_Trabajador"
	ColSex                 = "Sexo"
	ColAge                 = "Edad"
	ColHandedness          = "Diestro_Zurdo"
	ColPriorSeasons        = "Temporadas_previas"
	ColPriorSeasonCount    = "N_temporadas"
	ColTenureMonths        = "Tiempo_en_trabajo_meses"
	ColPriorActivity       = "Actividad_previa"
	ColOtherActivity       = "Otra_actividad"
	ColOtherActivityDetail = "Otra_actividad_cual"
)

var baseColumns = []string{
	ColID, ColDate, ColArea, ColRole, ColName, ColSex, ColAge, ColHandedness,
	ColPriorSeasons, ColPriorSeasonCount, ColTenureMonths, ColPriorActivity,
	ColOtherActivity, ColOtherActivityDetail,
}

var columns = buildColumns()

func buildColumns() []string {
	cols := append([]string(nil), baseColumns...)
	for _, z := range Zones {
		cols = append(cols,
			z+SuffixPain12m,
			z+SuffixDisabled,
			z+SuffixIntensity12m,
			z+SuffixPain7d,
			z+SuffixIntensity7d,
		)
	}
	return cols
}

// Columns returns a copy of the canonical column order of the responses sheet.
func Columns() []string {
	return append([]string(nil), columns...)
}

// ParameterColumns is the header of the parameters sheet.
var ParameterColumns = []string{"Área", "Hombres", "Mujeres", "Total"}

// Pair is an (area, role) combination read from the reference matrix.
type Pair struct {
	Area string `json:"area"`
	Role string `json:"role"`
}

// Headcount holds the staffing numbers of one area.
type Headcount struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// Total returns Male + Female.
func (h Headcount) Total() int {
	return h.Male + h.Female
}

// ZoneAnswer is the 5-field answer block of one anatomical zone. Every field
// except Pain12m is empty when Pain12m is false.
type ZoneAnswer struct {
	Pain12m      bool
	Disabled     string // "", SI or NO
	Intensity12m int    // 1..10, 0 when unset
	Pain7d       bool
	Intensity7d  int // 1..10, 0 when unset
}

// Response is one synthetic questionnaire answer.
type Response struct {
	ID                  int
	Date                string
	Area                string
	Role                string
	Name                string
	Sex                 string
	Age                 int
	Handedness          string
	PriorSeasons        bool
	PriorSeasonCount    int
	TenureMonths        int
	PriorActivity       string
	OtherActivity       bool
	OtherActivityDetail string
	Zones               []ZoneAnswer // aligned with Zones
}

// Row renders the response as text cells in canonical column order.
func (r Response) Row() []string {
	row := make([]string, 0, len(columns))
	row = append(row,
		strconv.Itoa(r.ID),
		r.Date,
		r.Area,
		r.Role,
		r.Name,
		r.Sex,
		strconv.Itoa(r.Age),
		r.Handedness,
		flag(r.PriorSeasons),
		strconv.Itoa(r.PriorSeasonCount),
		strconv.Itoa(r.TenureMonths),
		r.PriorActivity,
		flag(r.OtherActivity),
		r.OtherActivityDetail,
	)
	for i := range Zones {
		var z ZoneAnswer
		if i < len(r.Zones) {
			z = r.Zones[i]
		}
		if !z.Pain12m {
			row = append(row, No, "", "", "", "")
			continue
		}
		row = append(row, Yes, z.Disabled, strconv.Itoa(z.Intensity12m), flag(z.Pain7d), score(z.Intensity7d))
	}
	return row
}

// ParameterRow is one line of the per-area gender summary.
type ParameterRow struct {
	Area   string `json:"area"`
	Male   int    `json:"male"`
	Female int    `json:"female"`
	Total  int    `json:"total"`
}

// AreaStatus is the per-area freshness report of the responses sheet.
// Undated counts rows whose Fecha is blank or unparseable; they are neither
// current nor expired.
type AreaStatus struct {
	Area    string `json:"area"`
	Male    int    `json:"male"`
	Female  int    `json:"female"`
	Total   int    `json:"total"`
	Current int    `json:"current"`
	Expired int    `json:"expired"`
	Undated int    `json:"undated"`
	Latest  string `json:"latest,omitempty"`
}

func flag(b bool) string {
	if b {
		return Yes
	}
	return No
}

func score(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
