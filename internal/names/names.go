// Package names produces respondent names conditioned on sex.
//
// Two providers exist: the gofakeit corpus, which only serves English
// locales, and built-in Spanish name lists. New picks one once per run from
// a locale preference list. Both draw from the caller's random source so the
// whole run stays reproducible from one seed.
package names

import (
	"math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/rcliao/survey-seed/internal/model"
)

// Generator returns a full name for a respondent of the given sex.
type Generator interface {
	Name(sex string) string
}

// Source names which provider New selected.
type Source string

const (
	SourceCorpus  Source = "gofakeit"
	SourceBuiltin Source = "builtin"
)

// corpusLocales are the locales gofakeit can serve.
var corpusLocales = map[string]bool{
	"en":    true,
	"en_us": true,
}

// New returns the first provider serving a locale in preference order,
// or the built-in lists if none does. The matched locale is "" for the
// built-in lists.
func New(locales []string, rng *rand.Rand) (Generator, Source, string) {
	for _, loc := range locales {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(loc), "-", "_"))
		if corpusLocales[key] {
			return NewCorpus(rng), SourceCorpus, loc
		}
	}
	return NewBuiltin(rng), SourceBuiltin, ""
}

// Corpus wraps a gofakeit Faker.
type Corpus struct {
	faker *gofakeit.Faker
}

// NewCorpus builds a gofakeit-backed generator reading from rng.
func NewCorpus(rng *rand.Rand) *Corpus {
	return &Corpus{faker: gofakeit.NewFaker(rng, false)}
}

// Name ignores sex; the corpus first-name list is not split by sex.
func (c *Corpus) Name(sex string) string {
	return c.faker.FirstName() + " " + c.faker.LastName()
}

// Builtin draws from fixed Spanish name lists.
type Builtin struct {
	rng *rand.Rand
}

// NewBuiltin builds a list-backed generator reading from rng.
func NewBuiltin(rng *rand.Rand) *Builtin {
	return &Builtin{rng: rng}
}

func (b *Builtin) Name(sex string) string {
	given := femaleNames
	if sex == model.SexMale {
		given = maleNames
	}
	first := given[b.rng.IntN(len(given))]
	last := surnames[b.rng.IntN(len(surnames))]
	return first + " " + last
}

var maleNames = []string{
	"Juan", "Pedro", "Carlos", "Luis", "Jorge", "Diego", "Andrés", "Mauricio", "Sebastián",
	"Felipe", "Matías", "Gonzalo", "Nicolás", "Cristóbal", "Hernán", "Rodrigo", "Tomás",
}

var femaleNames = []string{
	"María", "Ana", "Carolina", "Daniela", "Camila", "Valentina", "Francisca", "Fernanda",
	"Josefina", "Antonia", "Constanza", "Isidora", "Catalina", "Paz", "Trinidad", "Sofía",
}

var surnames = []string{
	"González", "Muñoz", "Rojas", "Díaz", "Pérez", "Soto", "Contreras", "Silva", "Martínez",
	"Sepúlveda", "Morales", "Gutiérrez", "Castro", "Vargas", "Romero", "Herrera", "Flores",
}
