package credentials

// Credential es una entrada de la tabla estática de acceso.
// Se carga al arrancar y no cambia durante la vida del proceso.
type Credential struct {
	Key      string
	Username string
	Password string
}

// DefaultKey es la key del usuario admin de la tabla por defecto.
const DefaultKey = "4c1b3391576925b36c1ce627f38ea92d112f1a6ba440352ef703b205"

// DefaultTable se usa cuando no se configura un archivo de credenciales.
func DefaultTable() []Credential {
	return []Credential{
		{Key: DefaultKey, Username: "admin", Password: "admin"},
	}
}
