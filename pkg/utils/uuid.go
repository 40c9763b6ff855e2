package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador curto usado para correlacionar logs de
// resoluções de URL e execuções de jobs.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 10)
}
