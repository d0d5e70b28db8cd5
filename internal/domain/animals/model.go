package animals

import "github.com/shopspring/decimal"

// Species define las especies soportadas.
// @Enum mammal, fish, reptile, amphibian, bird, invertebrate
type Species string

const (
	SpeciesMammal       Species = "mammal"
	SpeciesFish         Species = "fish"
	SpeciesReptile      Species = "reptile"
	SpeciesAmphibian    Species = "amphibian"
	SpeciesBird         Species = "bird"
	SpeciesInvertebrate Species = "invertebrate"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesMammal, SpeciesFish, SpeciesReptile,
		SpeciesAmphibian, SpeciesBird, SpeciesInvertebrate:
		return true
	}
	return false
}

// Animal representa un animal registrado en un zoológico.
// Version es un contador de concurrencia optimista independiente del zoo.
type Animal struct {
	ID      int64
	Version int64
	ZooID   int64

	Designation string
	Species     Species
	Weight      decimal.Decimal // numeric(6,3), >= 0

	// File trae solo metadatos (sin Data) cuando se carga junto al animal.
	File *AnimalFile
}

// AnimalFile es el archivo binario adjunto a un animal (máximo uno).
type AnimalFile struct {
	ID       int64
	AnimalID int64
	Data     []byte
	Mimetype string
	Filename string
}
