package auth

// Claims representa la identidad resuelta a partir del auth-key.
// En este servicio la key es el propio identificador del dueño (user_id).
type Claims struct {
	Key      string
	Username string
}
