package entity

// Word представляет словарную единицу каталога.
// Каталог загружается один раз при старте и не меняется.
type Word struct {
	ID         int    `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Synonym    string `json:"synonym"`
}
