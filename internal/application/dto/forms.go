package dto

// LoginForm campos del formulario de login.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// QuantityForm campo de cantidad de los formularios de entrada/salida.
// Se recibe como string y se valida en el handler para distinguir
// "no numérico" de "fuera de rango".
type QuantityForm struct {
	Quantity string `form:"quantity"`
}
