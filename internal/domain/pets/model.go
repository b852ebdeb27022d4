package pets

import "time"

// AnimalType define los tipos de animal aceptados al crear.
// @Enum dog, cat, bird, fish, rabbit, hamster, turtle, parrot, other
type AnimalType string

const (
	AnimalDog     AnimalType = "dog"
	AnimalCat     AnimalType = "cat"
	AnimalBird    AnimalType = "bird"
	AnimalFish    AnimalType = "fish"
	AnimalRabbit  AnimalType = "rabbit"
	AnimalHamster AnimalType = "hamster"
	AnimalTurtle  AnimalType = "turtle"
	AnimalParrot  AnimalType = "parrot"
	AnimalOther   AnimalType = "other"
)

// AllowedAnimalTypes en el orden en que se listan en los mensajes de error.
var AllowedAnimalTypes = []AnimalType{
	AnimalDog, AnimalCat, AnimalBird, AnimalFish, AnimalRabbit,
	AnimalHamster, AnimalTurtle, AnimalParrot, AnimalOther,
}

const (
	NameMinLen = 2
	NameMaxLen = 50
	AgeMin     = 0
	AgeMax     = 100

	// MaxPetsPerOwner aplica sólo a la creación con foto.
	MaxPetsPerOwner = 10
)

// ListFilter selecciona qué mascotas devuelve List.
type ListFilter string

const (
	FilterMyPets ListFilter = "my_pets"
	FilterAll    ListFilter = "all"
)

// Pet es el registro de una mascota.
// Photo vacío = sin foto. Puede ser un path en disco o un data URL según el endpoint usado.
type Pet struct {
	ID     string
	UserID string // key del dueño, inmutable

	AnimalType AnimalType
	Name       string
	Age        int
	Photo      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
