package entity

// Country dato de referencia estático.
type Country struct {
	ID   int64
	Name string
}
