package entity

import "time"

// Almacen representa una bodega del taller donde se almacena inventario.
type Almacen struct {
	ID        string
	Nombre    string
	Direccion string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ubicacion representa una ubicación física dentro de un almacén (estante, zona).
type Ubicacion struct {
	ID        string
	AlmacenID string
	Nombre    string
	Activa    bool
	CreatedAt time.Time
}
