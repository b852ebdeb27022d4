package pets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// petFields agrupa los campos validados al crear. El orden de los campos es el
// orden en que se reportan los errores: edad, tipo, nombre.
type petFields struct {
	Age        int    `validate:"gte=0,lte=100"`
	AnimalType string `validate:"oneof=dog cat bird fish rabbit hamster turtle parrot other"`
	Name       string `validate:"min=2,max=50"`
}

func invalidAnimalTypeMessage() string {
	names := make([]string, 0, len(AllowedAnimalTypes))
	for _, t := range AllowedAnimalTypes {
		names = append(names, string(t))
	}
	return "Invalid animal type. Allowed types: " + strings.Join(names, ", ")
}

// validateFields devuelve el primer error en orden de campos, con el mensaje
// que ve el cliente.
func validateFields(v *validator.Validate, f petFields) error {
	err := v.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid(err.Error())
	}
	return invalid(fieldMessage(verrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "Age.gte":
		return "Age cannot be negative"
	case "Age.lte":
		return "Age is unrealistic for a pet"
	case "AnimalType.oneof":
		return invalidAnimalTypeMessage()
	case "Name.min":
		return fmt.Sprintf("Name must be at least %d characters long", NameMinLen)
	case "Name.max":
		return fmt.Sprintf("Name cannot exceed %d characters", NameMaxLen)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
